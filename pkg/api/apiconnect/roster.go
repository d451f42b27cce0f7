package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// RosterServicePath is the mux prefix for the roster service.
	RosterServicePath = "/goatos.v1.RosterService/"

	RosterServiceCreateAthleteProcedure = "/goatos.v1.RosterService/CreateAthlete"
	RosterServiceListAthletesProcedure  = "/goatos.v1.RosterService/ListAthletes"
)

// RosterServiceHandler is the server-side contract for the roster service.
type RosterServiceHandler interface {
	CreateAthlete(context.Context, *connect.Request[api.CreateAthleteRequest]) (*connect.Response[api.CreateAthleteResponse], error)
	ListAthletes(context.Context, *connect.Request[api.ListAthletesRequest]) (*connect.Response[api.ListAthletesResponse], error)
}

// NewRosterServiceHandler returns the path prefix and handler for svc.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(RosterServiceCreateAthleteProcedure, connect.NewUnaryHandler(RosterServiceCreateAthleteProcedure, svc.CreateAthlete, opts...))
	mux.Handle(RosterServiceListAthletesProcedure, connect.NewUnaryHandler(RosterServiceListAthletesProcedure, svc.ListAthletes, opts...))
	return RosterServicePath, mux
}

// RosterServiceClient is a typed client for the roster service.
type RosterServiceClient struct {
	createAthlete *connect.Client[api.CreateAthleteRequest, api.CreateAthleteResponse]
	listAthletes  *connect.Client[api.ListAthletesRequest, api.ListAthletesResponse]
}

// NewRosterServiceClient constructs a client against baseURL.
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RosterServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &RosterServiceClient{
		createAthlete: connect.NewClient[api.CreateAthleteRequest, api.CreateAthleteResponse](httpClient, baseURL+RosterServiceCreateAthleteProcedure, opts...),
		listAthletes:  connect.NewClient[api.ListAthletesRequest, api.ListAthletesResponse](httpClient, baseURL+RosterServiceListAthletesProcedure, opts...),
	}
}

func (c *RosterServiceClient) CreateAthlete(ctx context.Context, req *connect.Request[api.CreateAthleteRequest]) (*connect.Response[api.CreateAthleteResponse], error) {
	return c.createAthlete.CallUnary(ctx, req)
}

func (c *RosterServiceClient) ListAthletes(ctx context.Context, req *connect.Request[api.ListAthletesRequest]) (*connect.Response[api.ListAthletesResponse], error) {
	return c.listAthletes.CallUnary(ctx, req)
}
