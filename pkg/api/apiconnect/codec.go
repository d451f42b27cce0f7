// Package apiconnect wires the api wire types to Connect handlers and
// clients.
//
// The layout mirrors what protoc-gen-connect-go would emit (per-service
// procedure constants, a handler interface plus constructor, and a typed
// client) but it is written by hand: the api package uses plain JSON
// structs, not protobuf messages, so there is no schema to generate from.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codec serializes the api structs with encoding/json. Registering it under
// the "json" name replaces Connect's default protojson codec, which only
// accepts generated protobuf messages.
type codec struct{}

func (codec) Name() string { return "json" }

func (codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// withJSONCodec is prepended to every handler and client option list so
// callers never have to remember it.
func withJSONCodec() connect.Option { return connect.WithCodec(codec{}) }
