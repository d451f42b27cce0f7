package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/middleware"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

// PaymentService implements the PaymentService RPC interface.
//
// Cash payments and expenses feed the register ledger as a side effect.
// The side effect is soft: a missing open register logs a warning and the
// payment still succeeds, and a retried payment never double-books because
// movements are idempotent per financial record.
type PaymentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(store storage.Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{store: store, logger: logger}
}

// RecordPayment records money received from an athlete.
func (s *PaymentService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.AthleteId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("athlete id required"))
	}
	if req.Msg.Amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("amount must be positive"))
	}
	method := models.PaymentMethod(req.Msg.Method)
	if !method.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("method must be cash, card or transfer"))
	}
	if _, err := s.store.GetAthlete(ctx, orgID, req.Msg.AthleteId); err != nil {
		return nil, storageError(err)
	}

	payment := &models.Payment{
		OrgID:       orgID,
		AthleteID:   req.Msg.AthleteId,
		Amount:      req.Msg.Amount,
		Method:      method,
		Description: req.Msg.Description,
		RecordedBy:  middleware.GetUserID(ctx),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("Failed to record payment", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.recordMovementIfCash(ctx, orgID, models.MovementIncome, payment.Amount, payment.Method,
		payment.Description, models.Reference{Type: models.ReferencePayment, ID: payment.ID})

	s.logger.Info("Payment recorded", "org_id", orgID, "payment_id", payment.ID, "amount", payment.Amount, "method", payment.Method)
	return connect.NewResponse(&api.RecordPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// RecordExpense records money the organization paid out. Admin only.
func (s *PaymentService) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if req.Msg.Amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("amount must be positive"))
	}
	method := models.PaymentMethod(req.Msg.Method)
	if !method.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("method must be cash, card or transfer"))
	}

	expense := &models.Expense{
		OrgID:       orgID,
		Amount:      req.Msg.Amount,
		Method:      method,
		Description: req.Msg.Description,
		RecordedBy:  middleware.GetUserID(ctx),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("Failed to record expense", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.recordMovementIfCash(ctx, orgID, models.MovementExpense, expense.Amount, expense.Method,
		expense.Description, models.Reference{Type: models.ReferenceExpense, ID: expense.ID})

	s.logger.Info("Expense recorded", "org_id", orgID, "expense_id", expense.ID, "amount", expense.Amount)
	return connect.NewResponse(&api.RecordExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListPayments returns the org's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPayments(ctx, orgID)
	if err != nil {
		s.logger.Error("Failed to list payments", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListPaymentsResponse{Payments: make([]*api.Payment, 0, len(payments))}
	for i := range payments {
		resp.Payments = append(resp.Payments, toAPIPayment(&payments[i]))
	}
	return connect.NewResponse(resp), nil
}

// recordMovementIfCash books a cash movement against the open register.
// Non-cash methods are a no-op. A missing open register or a duplicate
// movement for the same record logs a warning and never fails the caller.
func (s *PaymentService) recordMovementIfCash(ctx context.Context, orgID string, movementType models.MovementType, amount int64, method models.PaymentMethod, description string, ref models.Reference) {
	if method != models.MethodCash {
		return
	}

	register, err := s.store.GetOpenRegister(ctx, orgID)
	if err != nil {
		s.logger.Error("Failed to look up open register", "org_id", orgID, "error", err)
		return
	}
	if register == nil {
		s.logger.Warn("Cash recorded with no open register, movement skipped",
			"org_id", orgID, "reference_type", ref.Type, "reference_id", ref.ID, "amount", amount)
		return
	}

	movement := &models.CashMovement{
		RegisterID:  register.ID,
		OrgID:       orgID,
		Type:        movementType,
		Amount:      amount,
		Description: description,
		Ref:         ref,
		RecordedBy:  middleware.GetUserID(ctx),
	}
	if err := s.store.CreateMovement(ctx, movement); err != nil {
		if errors.Is(err, storage.ErrDuplicateEntry) {
			s.logger.Warn("Movement already booked for record", "org_id", orgID, "reference_id", ref.ID)
			return
		}
		s.logger.Error("Failed to record movement", "org_id", orgID, "reference_id", ref.ID, "error", err)
		return
	}

	s.logger.Info("Cash movement recorded", "org_id", orgID, "movement_id", movement.ID, "register_id", register.ID, "type", movementType)
}
