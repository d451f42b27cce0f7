// Package service implements the RPC services for GOAT OS.
package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/auth"
	"github.com/goatos/goatos/internal/middleware"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

var errAdminOnly = errors.New("admin role required")

// orgFromContext returns the caller's organization ID, or an unauthenticated
// error when the auth middleware did not run.
func orgFromContext(ctx context.Context) (string, error) {
	orgID := middleware.GetOrgID(ctx)
	if orgID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return orgID, nil
}

// requireAdmin returns a permission error unless the caller is an admin.
func requireAdmin(ctx context.Context) error {
	if !middleware.IsAdmin(ctx) {
		return connect.NewError(connect.CodePermissionDenied, errAdminOnly)
	}
	return nil
}

// storageError maps storage sentinel errors to RPC codes. Anything
// unrecognized becomes an internal error.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicateEntry):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrAlreadyOpen), errors.Is(err, storage.ErrAlreadyClosed), errors.Is(err, storage.ErrInvalidTransition):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrCapacityExceeded):
		return connect.NewError(connect.CodeResourceExhausted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:        u.ID,
		OrgId:     u.OrgID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toAPIAthlete(a *models.Athlete) *api.Athlete {
	return &api.Athlete{
		Id:        a.ID,
		OrgId:     a.OrgID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

func toAPIGroup(g *models.TrainingGroup) *api.TrainingGroup {
	return &api.TrainingGroup{
		Id:          g.ID,
		OrgId:       g.OrgID,
		Name:        g.Name,
		MaxCapacity: g.MaxCapacity,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPISession(s *models.TrainingSession) *api.TrainingSession {
	return &api.TrainingSession{
		Id:          s.ID,
		OrgId:       s.OrgID,
		GroupId:     s.GroupID,
		Title:       s.Title,
		StartsAt:    s.StartsAt,
		MaxCapacity: s.MaxCapacity,
		CreatedAt:   s.CreatedAt,
	}
}

func toAPIRegistration(r *models.Registration) *api.Registration {
	return &api.Registration{
		Id:            r.ID,
		OrgId:         r.OrgID,
		AthleteId:     r.AthleteID,
		ReferenceType: string(r.Ref.Type),
		ReferenceId:   r.Ref.ID,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}

func toAPIWaitlistEntry(e *models.WaitlistEntry) *api.WaitlistEntry {
	return &api.WaitlistEntry{
		Id:            e.ID,
		OrgId:         e.OrgID,
		AthleteId:     e.AthleteID,
		ReferenceType: string(e.Ref.Type),
		ReferenceId:   e.Ref.ID,
		Priority:      string(e.Priority),
		Status:        string(e.Status),
		Position:      e.Position,
		Reason:        e.Reason,
		Notes:         e.Notes,
		ExpiresAt:     e.ExpiresAt,
		CreatedAt:     e.CreatedAt,
	}
}

func toAPIRegister(r *models.CashRegister) *api.CashRegister {
	return &api.CashRegister{
		Id:             r.ID,
		OrgId:          r.OrgID,
		Date:           r.Date,
		Status:         string(r.Status),
		OpeningBalance: r.OpeningBalance,
		ClosingBalance: r.ClosingBalance,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
	}
}

func toAPIMovement(m *models.CashMovement) *api.CashMovement {
	return &api.CashMovement{
		Id:            m.ID,
		RegisterId:    m.RegisterID,
		OrgId:         m.OrgID,
		Type:          string(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		ReferenceType: string(m.Ref.Type),
		ReferenceId:   m.Ref.ID,
		RecordedBy:    m.RecordedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		Id:          p.ID,
		OrgId:       p.OrgID,
		AthleteId:   p.AthleteID,
		Amount:      p.Amount,
		Method:      string(p.Method),
		Description: p.Description,
		RecordedBy:  p.RecordedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:          e.ID,
		OrgId:       e.OrgID,
		Amount:      e.Amount,
		Method:      string(e.Method),
		Description: e.Description,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}
