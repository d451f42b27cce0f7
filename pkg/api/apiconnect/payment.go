package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/pkg/api"
)

const (
	// PaymentServicePath is the mux prefix for the payment service.
	PaymentServicePath = "/goatos.v1.PaymentService/"

	PaymentServiceRecordPaymentProcedure = "/goatos.v1.PaymentService/RecordPayment"
	PaymentServiceRecordExpenseProcedure = "/goatos.v1.PaymentService/RecordExpense"
	PaymentServiceListPaymentsProcedure  = "/goatos.v1.PaymentService/ListPayments"
)

// PaymentServiceHandler is the server-side contract for the payment service.
type PaymentServiceHandler interface {
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
}

// NewPaymentServiceHandler returns the path prefix and handler for svc.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withJSONCodec()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(PaymentServiceRecordPaymentProcedure, connect.NewUnaryHandler(PaymentServiceRecordPaymentProcedure, svc.RecordPayment, opts...))
	mux.Handle(PaymentServiceRecordExpenseProcedure, connect.NewUnaryHandler(PaymentServiceRecordExpenseProcedure, svc.RecordExpense, opts...))
	mux.Handle(PaymentServiceListPaymentsProcedure, connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts...))
	return PaymentServicePath, mux
}

// PaymentServiceClient is a typed client for the payment service.
type PaymentServiceClient struct {
	recordPayment *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	recordExpense *connect.Client[api.RecordExpenseRequest, api.RecordExpenseResponse]
	listPayments  *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
}

// NewPaymentServiceClient constructs a client against baseURL.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PaymentServiceClient {
	opts = append([]connect.ClientOption{withJSONCodec()}, opts...)
	return &PaymentServiceClient{
		recordPayment: connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+PaymentServiceRecordPaymentProcedure, opts...),
		recordExpense: connect.NewClient[api.RecordExpenseRequest, api.RecordExpenseResponse](httpClient, baseURL+PaymentServiceRecordExpenseProcedure, opts...),
		listPayments:  connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
	}
}

func (c *PaymentServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}
