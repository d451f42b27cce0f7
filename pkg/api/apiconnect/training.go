package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// TrainingServicePath is the mux prefix for the training service.
	TrainingServicePath = "/goatos.v1.TrainingService/"

	TrainingServiceCreateGroupProcedure      = "/goatos.v1.TrainingService/CreateGroup"
	TrainingServiceCreateSessionProcedure    = "/goatos.v1.TrainingService/CreateSession"
	TrainingServiceGenerateSessionsProcedure = "/goatos.v1.TrainingService/GenerateSessions"
	TrainingServiceListSessionsProcedure     = "/goatos.v1.TrainingService/ListSessions"
	TrainingServiceGetCapacityProcedure      = "/goatos.v1.TrainingService/GetCapacity"
)

// TrainingServiceHandler is the server-side contract for the training service.
type TrainingServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	GenerateSessions(context.Context, *connect.Request[api.GenerateSessionsRequest]) (*connect.Response[api.GenerateSessionsResponse], error)
	ListSessions(context.Context, *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error)
	GetCapacity(context.Context, *connect.Request[api.GetCapacityRequest]) (*connect.Response[api.GetCapacityResponse], error)
}

// NewTrainingServiceHandler returns the path prefix and handler for svc.
func NewTrainingServiceHandler(svc TrainingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(TrainingServiceCreateGroupProcedure, connect.NewUnaryHandler(TrainingServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(TrainingServiceCreateSessionProcedure, connect.NewUnaryHandler(TrainingServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(TrainingServiceGenerateSessionsProcedure, connect.NewUnaryHandler(TrainingServiceGenerateSessionsProcedure, svc.GenerateSessions, opts...))
	mux.Handle(TrainingServiceListSessionsProcedure, connect.NewUnaryHandler(TrainingServiceListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(TrainingServiceGetCapacityProcedure, connect.NewUnaryHandler(TrainingServiceGetCapacityProcedure, svc.GetCapacity, opts...))
	return TrainingServicePath, mux
}

// TrainingServiceClient is a typed client for the training service.
type TrainingServiceClient struct {
	createGroup      *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	createSession    *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	generateSessions *connect.Client[api.GenerateSessionsRequest, api.GenerateSessionsResponse]
	listSessions     *connect.Client[api.ListSessionsRequest, api.ListSessionsResponse]
	getCapacity      *connect.Client[api.GetCapacityRequest, api.GetCapacityResponse]
}

// NewTrainingServiceClient constructs a client against baseURL.
func NewTrainingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TrainingServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &TrainingServiceClient{
		createGroup:      connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+TrainingServiceCreateGroupProcedure, opts...),
		createSession:    connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+TrainingServiceCreateSessionProcedure, opts...),
		generateSessions: connect.NewClient[api.GenerateSessionsRequest, api.GenerateSessionsResponse](httpClient, baseURL+TrainingServiceGenerateSessionsProcedure, opts...),
		listSessions:     connect.NewClient[api.ListSessionsRequest, api.ListSessionsResponse](httpClient, baseURL+TrainingServiceListSessionsProcedure, opts...),
		getCapacity:      connect.NewClient[api.GetCapacityRequest, api.GetCapacityResponse](httpClient, baseURL+TrainingServiceGetCapacityProcedure, opts...),
	}
}

func (c *TrainingServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *TrainingServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *TrainingServiceClient) GenerateSessions(ctx context.Context, req *connect.Request[api.GenerateSessionsRequest]) (*connect.Response[api.GenerateSessionsResponse], error) {
	return c.generateSessions.CallUnary(ctx, req)
}

func (c *TrainingServiceClient) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *TrainingServiceClient) GetCapacity(ctx context.Context, req *connect.Request[api.GetCapacityRequest]) (*connect.Response[api.GetCapacityResponse], error) {
	return c.getCapacity.CallUnary(ctx, req)
}
