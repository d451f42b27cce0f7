package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/ledger"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

// CashRegisterService implements the CashRegisterService RPC interface.
type CashRegisterService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewCashRegisterService creates a new cash register service.
func NewCashRegisterService(store storage.Store, logger *slog.Logger) *CashRegisterService {
	return &CashRegisterService{store: store, logger: logger, now: time.Now}
}

// startOfDay normalizes a Unix timestamp to 00:00 UTC of its day.
func startOfDay(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// Open opens the organization's register for a day. Admin only.
func (s *CashRegisterService) Open(ctx context.Context, req *connect.Request[api.OpenRegisterRequest]) (*connect.Response[api.OpenRegisterResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if req.Msg.OpeningBalance < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("opening balance must not be negative"))
	}

	date := req.Msg.Date
	if date == 0 {
		date = s.now().Unix()
	}

	register := &models.CashRegister{
		OrgID:          orgID,
		Date:           startOfDay(date),
		Status:         models.RegisterOpen,
		OpeningBalance: req.Msg.OpeningBalance,
	}
	if err := s.store.OpenRegister(ctx, register); err != nil {
		s.logger.Warn("Failed to open register", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Register opened", "org_id", orgID, "register_id", register.ID, "opening_balance", register.OpeningBalance)
	return connect.NewResponse(&api.OpenRegisterResponse{Register: toAPIRegister(register)}), nil
}

// Close closes a register, fixing its closing balance from the recorded
// movements. Admin only.
func (s *CashRegisterService) Close(ctx context.Context, req *connect.Request[api.CloseRegisterRequest]) (*connect.Response[api.CloseRegisterResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if req.Msg.RegisterId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("register id required"))
	}

	register, err := s.store.CloseRegister(ctx, orgID, req.Msg.RegisterId, req.Msg.Notes)
	if err != nil {
		s.logger.Warn("Failed to close register", "org_id", orgID, "register_id", req.Msg.RegisterId, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Register closed", "org_id", orgID, "register_id", register.ID, "closing_balance", *register.ClosingBalance)
	return connect.NewResponse(&api.CloseRegisterResponse{Register: toAPIRegister(register)}), nil
}

// GetDailySummary aggregates the movements of a day's registers.
func (s *CashRegisterService) GetDailySummary(ctx context.Context, req *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.GetDailySummaryResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date := req.Msg.Date
	if date == 0 {
		date = s.now().Unix()
	}
	date = startOfDay(date)

	movements, err := s.store.ListMovementsByDate(ctx, orgID, date)
	if err != nil {
		s.logger.Error("Failed to load daily movements", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	totals := ledger.Sum(movements)
	return connect.NewResponse(&api.GetDailySummaryResponse{
		Date:          date,
		TotalIncome:   totals.Income,
		TotalExpense:  totals.Expense,
		NetCashFlow:   totals.NetCashFlow(),
		MovementCount: int32(totals.MovementCount),
	}), nil
}

// ListMovements returns a register's movements, oldest first.
func (s *CashRegisterService) ListMovements(ctx context.Context, req *connect.Request[api.ListMovementsRequest]) (*connect.Response[api.ListMovementsResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.RegisterId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("register id required"))
	}
	if _, err := s.store.GetRegister(ctx, orgID, req.Msg.RegisterId); err != nil {
		return nil, storageError(err)
	}

	movements, err := s.store.ListMovements(ctx, orgID, req.Msg.RegisterId)
	if err != nil {
		s.logger.Error("Failed to list movements", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListMovementsResponse{Movements: make([]*api.CashMovement, 0, len(movements))}
	for i := range movements {
		resp.Movements = append(resp.Movements, toAPIMovement(&movements[i]))
	}
	return connect.NewResponse(resp), nil
}
