package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// RegistrationServicePath is the mux prefix for the registration service.
	RegistrationServicePath = "/goatos.v1.RegistrationService/"

	RegistrationServiceCreateRegistrationProcedure = "/goatos.v1.RegistrationService/CreateRegistration"
	RegistrationServiceCancelRegistrationProcedure = "/goatos.v1.RegistrationService/CancelRegistration"
)

// RegistrationServiceHandler is the server-side contract for the registration service.
type RegistrationServiceHandler interface {
	CreateRegistration(context.Context, *connect.Request[api.CreateRegistrationRequest]) (*connect.Response[api.CreateRegistrationResponse], error)
	CancelRegistration(context.Context, *connect.Request[api.CancelRegistrationRequest]) (*connect.Response[api.CancelRegistrationResponse], error)
}

// NewRegistrationServiceHandler returns the path prefix and handler for svc.
func NewRegistrationServiceHandler(svc RegistrationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(RegistrationServiceCreateRegistrationProcedure, connect.NewUnaryHandler(RegistrationServiceCreateRegistrationProcedure, svc.CreateRegistration, opts...))
	mux.Handle(RegistrationServiceCancelRegistrationProcedure, connect.NewUnaryHandler(RegistrationServiceCancelRegistrationProcedure, svc.CancelRegistration, opts...))
	return RegistrationServicePath, mux
}

// RegistrationServiceClient is a typed client for the registration service.
type RegistrationServiceClient struct {
	createRegistration *connect.Client[api.CreateRegistrationRequest, api.CreateRegistrationResponse]
	cancelRegistration *connect.Client[api.CancelRegistrationRequest, api.CancelRegistrationResponse]
}

// NewRegistrationServiceClient constructs a client against baseURL.
func NewRegistrationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RegistrationServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &RegistrationServiceClient{
		createRegistration: connect.NewClient[api.CreateRegistrationRequest, api.CreateRegistrationResponse](httpClient, baseURL+RegistrationServiceCreateRegistrationProcedure, opts...),
		cancelRegistration: connect.NewClient[api.CancelRegistrationRequest, api.CancelRegistrationResponse](httpClient, baseURL+RegistrationServiceCancelRegistrationProcedure, opts...),
	}
}

func (c *RegistrationServiceClient) CreateRegistration(ctx context.Context, req *connect.Request[api.CreateRegistrationRequest]) (*connect.Response[api.CreateRegistrationResponse], error) {
	return c.createRegistration.CallUnary(ctx, req)
}

func (c *RegistrationServiceClient) CancelRegistration(ctx context.Context, req *connect.Request[api.CancelRegistrationRequest]) (*connect.Response[api.CancelRegistrationResponse], error) {
	return c.cancelRegistration.CallUnary(ctx, req)
}
