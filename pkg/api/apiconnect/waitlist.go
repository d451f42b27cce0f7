package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// WaitlistServicePath is the mux prefix for the waitlist service.
	WaitlistServicePath = "/goatos.v1.WaitlistService/"

	WaitlistServiceEnqueueProcedure            = "/goatos.v1.WaitlistService/Enqueue"
	WaitlistServiceListProcedure               = "/goatos.v1.WaitlistService/List"
	WaitlistServicePromoteProcedure            = "/goatos.v1.WaitlistService/Promote"
	WaitlistServiceCancelProcedure             = "/goatos.v1.WaitlistService/Cancel"
	WaitlistServiceBulkUpdatePriorityProcedure = "/goatos.v1.WaitlistService/BulkUpdatePriority"
	WaitlistServiceBulkDeleteProcedure         = "/goatos.v1.WaitlistService/BulkDelete"
)

// WaitlistServiceHandler is the server-side contract for the waitlist service.
type WaitlistServiceHandler interface {
	Enqueue(context.Context, *connect.Request[api.EnqueueWaitlistRequest]) (*connect.Response[api.EnqueueWaitlistResponse], error)
	List(context.Context, *connect.Request[api.ListWaitlistRequest]) (*connect.Response[api.ListWaitlistResponse], error)
	Promote(context.Context, *connect.Request[api.PromoteWaitlistRequest]) (*connect.Response[api.PromoteWaitlistResponse], error)
	Cancel(context.Context, *connect.Request[api.CancelWaitlistRequest]) (*connect.Response[api.CancelWaitlistResponse], error)
	BulkUpdatePriority(context.Context, *connect.Request[api.BulkUpdatePriorityRequest]) (*connect.Response[api.BulkUpdatePriorityResponse], error)
	BulkDelete(context.Context, *connect.Request[api.BulkDeleteWaitlistRequest]) (*connect.Response[api.BulkDeleteWaitlistResponse], error)
}

// NewWaitlistServiceHandler returns the path prefix and handler for svc.
func NewWaitlistServiceHandler(svc WaitlistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(WaitlistServiceEnqueueProcedure, connect.NewUnaryHandler(WaitlistServiceEnqueueProcedure, svc.Enqueue, opts...))
	mux.Handle(WaitlistServiceListProcedure, connect.NewUnaryHandler(WaitlistServiceListProcedure, svc.List, opts...))
	mux.Handle(WaitlistServicePromoteProcedure, connect.NewUnaryHandler(WaitlistServicePromoteProcedure, svc.Promote, opts...))
	mux.Handle(WaitlistServiceCancelProcedure, connect.NewUnaryHandler(WaitlistServiceCancelProcedure, svc.Cancel, opts...))
	mux.Handle(WaitlistServiceBulkUpdatePriorityProcedure, connect.NewUnaryHandler(WaitlistServiceBulkUpdatePriorityProcedure, svc.BulkUpdatePriority, opts...))
	mux.Handle(WaitlistServiceBulkDeleteProcedure, connect.NewUnaryHandler(WaitlistServiceBulkDeleteProcedure, svc.BulkDelete, opts...))
	return WaitlistServicePath, mux
}

// WaitlistServiceClient is a typed client for the waitlist service.
type WaitlistServiceClient struct {
	enqueue            *connect.Client[api.EnqueueWaitlistRequest, api.EnqueueWaitlistResponse]
	list               *connect.Client[api.ListWaitlistRequest, api.ListWaitlistResponse]
	promote            *connect.Client[api.PromoteWaitlistRequest, api.PromoteWaitlistResponse]
	cancel             *connect.Client[api.CancelWaitlistRequest, api.CancelWaitlistResponse]
	bulkUpdatePriority *connect.Client[api.BulkUpdatePriorityRequest, api.BulkUpdatePriorityResponse]
	bulkDelete         *connect.Client[api.BulkDeleteWaitlistRequest, api.BulkDeleteWaitlistResponse]
}

// NewWaitlistServiceClient constructs a client against baseURL.
func NewWaitlistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *WaitlistServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &WaitlistServiceClient{
		enqueue:            connect.NewClient[api.EnqueueWaitlistRequest, api.EnqueueWaitlistResponse](httpClient, baseURL+WaitlistServiceEnqueueProcedure, opts...),
		list:               connect.NewClient[api.ListWaitlistRequest, api.ListWaitlistResponse](httpClient, baseURL+WaitlistServiceListProcedure, opts...),
		promote:            connect.NewClient[api.PromoteWaitlistRequest, api.PromoteWaitlistResponse](httpClient, baseURL+WaitlistServicePromoteProcedure, opts...),
		cancel:             connect.NewClient[api.CancelWaitlistRequest, api.CancelWaitlistResponse](httpClient, baseURL+WaitlistServiceCancelProcedure, opts...),
		bulkUpdatePriority: connect.NewClient[api.BulkUpdatePriorityRequest, api.BulkUpdatePriorityResponse](httpClient, baseURL+WaitlistServiceBulkUpdatePriorityProcedure, opts...),
		bulkDelete:         connect.NewClient[api.BulkDeleteWaitlistRequest, api.BulkDeleteWaitlistResponse](httpClient, baseURL+WaitlistServiceBulkDeleteProcedure, opts...),
	}
}

func (c *WaitlistServiceClient) Enqueue(ctx context.Context, req *connect.Request[api.EnqueueWaitlistRequest]) (*connect.Response[api.EnqueueWaitlistResponse], error) {
	return c.enqueue.CallUnary(ctx, req)
}

func (c *WaitlistServiceClient) List(ctx context.Context, req *connect.Request[api.ListWaitlistRequest]) (*connect.Response[api.ListWaitlistResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *WaitlistServiceClient) Promote(ctx context.Context, req *connect.Request[api.PromoteWaitlistRequest]) (*connect.Response[api.PromoteWaitlistResponse], error) {
	return c.promote.CallUnary(ctx, req)
}

func (c *WaitlistServiceClient) Cancel(ctx context.Context, req *connect.Request[api.CancelWaitlistRequest]) (*connect.Response[api.CancelWaitlistResponse], error) {
	return c.cancel.CallUnary(ctx, req)
}

func (c *WaitlistServiceClient) BulkUpdatePriority(ctx context.Context, req *connect.Request[api.BulkUpdatePriorityRequest]) (*connect.Response[api.BulkUpdatePriorityResponse], error) {
	return c.bulkUpdatePriority.CallUnary(ctx, req)
}

func (c *WaitlistServiceClient) BulkDelete(ctx context.Context, req *connect.Request[api.BulkDeleteWaitlistRequest]) (*connect.Response[api.BulkDeleteWaitlistResponse], error) {
	return c.bulkDelete.CallUnary(ctx, req)
}
