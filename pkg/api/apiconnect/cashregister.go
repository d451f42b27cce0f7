package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// CashRegisterServicePath is the mux prefix for the cash register service.
	CashRegisterServicePath = "/goatos.v1.CashRegisterService/"

	CashRegisterServiceOpenProcedure            = "/goatos.v1.CashRegisterService/Open"
	CashRegisterServiceCloseProcedure           = "/goatos.v1.CashRegisterService/Close"
	CashRegisterServiceGetDailySummaryProcedure = "/goatos.v1.CashRegisterService/GetDailySummary"
	CashRegisterServiceListMovementsProcedure   = "/goatos.v1.CashRegisterService/ListMovements"
)

// CashRegisterServiceHandler is the server-side contract for the cash register service.
type CashRegisterServiceHandler interface {
	Open(context.Context, *connect.Request[api.OpenRegisterRequest]) (*connect.Response[api.OpenRegisterResponse], error)
	Close(context.Context, *connect.Request[api.CloseRegisterRequest]) (*connect.Response[api.CloseRegisterResponse], error)
	GetDailySummary(context.Context, *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.GetDailySummaryResponse], error)
	ListMovements(context.Context, *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error)
}

// NewCashRegisterServiceHandler returns the path prefix and handler for svc.
func NewCashRegisterServiceHandler(svc CashRegisterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(CashRegisterServiceOpenProcedure, connect.NewUnaryHandler(CashRegisterServiceOpenProcedure, svc.Open, opts...))
	mux.Handle(CashRegisterServiceCloseProcedure, connect.NewUnaryHandler(CashRegisterServiceCloseProcedure, svc.Close, opts...))
	mux.Handle(CashRegisterServiceGetDailySummaryProcedure, connect.NewUnaryHandler(CashRegisterServiceGetDailySummaryProcedure, svc.GetDailySummary, opts...))
	mux.Handle(CashRegisterServiceListMovementsProcedure, connect.NewUnaryHandler(CashRegisterServiceListMovementsProcedure, svc.ListMovements, opts...))
	return CashRegisterServicePath, mux
}

// CashRegisterServiceClient is a typed client for the cash register service.
type CashRegisterServiceClient struct {
	open            *connect.Client[api.OpenRegisterRequest, api.OpenRegisterResponse]
	close           *connect.Client[api.CloseRegisterRequest, api.CloseRegisterResponse]
	getDailySummary *connect.Client[api.GetDailySummaryRequest, api.GetDailySummaryResponse]
	listMovements   *connect.Client[api.ListMovementsRequest, api.ListMovementsResponse]
}

// NewCashRegisterServiceClient constructs a client against baseURL.
func NewCashRegisterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CashRegisterServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &CashRegisterServiceClient{
		open:            connect.NewClient[api.OpenRegisterRequest, api.OpenRegisterResponse](httpClient, baseURL+CashRegisterServiceOpenProcedure, opts...),
		close:           connect.NewClient[api.CloseRegisterRequest, api.CloseRegisterResponse](httpClient, baseURL+CashRegisterServiceCloseProcedure, opts...),
		getDailySummary: connect.NewClient[api.GetDailySummaryRequest, api.GetDailySummaryResponse](httpClient, baseURL+CashRegisterServiceGetDailySummaryProcedure, opts...),
		listMovements:   connect.NewClient[api.ListMovementsRequest, api.ListMovementsResponse](httpClient, baseURL+CashRegisterServiceListMovementsProcedure, opts...),
	}
}

func (c *CashRegisterServiceClient) Open(ctx context.Context, req *connect.Request[api.OpenRegisterRequest]) (*connect.Response[api.OpenRegisterResponse], error) {
	return c.open.CallUnary(ctx, req)
}

func (c *CashRegisterServiceClient) Close(ctx context.Context, req *connect.Request[api.CloseRegisterRequest]) (*connect.Response[api.CloseRegisterResponse], error) {
	return c.close.CallUnary(ctx, req)
}

func (c *CashRegisterServiceClient) GetDailySummary(ctx context.Context, req *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.GetDailySummaryResponse], error) {
	return c.getDailySummary.CallUnary(ctx, req)
}

func (c *CashRegisterServiceClient) ListMovements(ctx context.Context, req *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error) {
	return c.listMovements.CallUnary(ctx, req)
}
