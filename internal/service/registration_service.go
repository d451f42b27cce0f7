package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/flags"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

// RegistrationService implements the RegistrationService RPC interface.
//
// The interesting path is a full holder: when the capacity check fails and
// the organization's waitlist feature is enabled, the registration degrades
// into a medium-priority waitlist entry instead of an error.
type RegistrationService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(store storage.Store, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{store: store, logger: logger}
}

// CreateRegistration registers an athlete into a session or group, falling
// back to the waitlist when the holder is full and the feature is enabled.
func (s *RegistrationService) CreateRegistration(ctx context.Context, req *connect.Request[api.CreateRegistrationRequest]) (*connect.Response[api.CreateRegistrationResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.AthleteId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("athlete id required"))
	}
	ref := models.Reference{Type: models.ReferenceType(req.Msg.ReferenceType), ID: req.Msg.ReferenceId}
	if err := ref.ValidHolder(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if _, err := s.store.GetAthlete(ctx, orgID, req.Msg.AthleteId); err != nil {
		return nil, storageError(err)
	}

	reg := &models.Registration{
		OrgID:     orgID,
		AthleteID: req.Msg.AthleteId,
		Ref:       ref,
		Status:    models.RegistrationActive,
	}
	err = s.store.CreateRegistration(ctx, reg)
	if err == nil {
		s.logger.Info("Registration created", "org_id", orgID, "registration_id", reg.ID)
		return connect.NewResponse(&api.CreateRegistrationResponse{Registration: toAPIRegistration(reg)}), nil
	}
	if !errors.Is(err, storage.ErrCapacityExceeded) {
		s.logger.Error("Failed to create registration", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	// Holder is full: waitlist the athlete if the org allows it.
	state, ferr := flags.Lookup(ctx, s.store, orgID, flags.FeatureWaitlist)
	if ferr != nil {
		s.logger.Error("Feature flag lookup failed", "org_id", orgID, "error", ferr)
		return nil, connect.NewError(connect.CodeInternal, ferr)
	}
	if state == flags.Disabled {
		return nil, storageError(err)
	}

	entry := &models.WaitlistEntry{
		OrgID:     orgID,
		AthleteID: req.Msg.AthleteId,
		Ref:       ref,
		Priority:  models.PriorityMedium,
		Status:    models.WaitlistWaiting,
		Reason:    "capacity full at registration",
	}
	if err := s.store.CreateWaitlistEntry(ctx, entry); err != nil {
		s.logger.Error("Failed to waitlist athlete", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Registration waitlisted", "org_id", orgID, "entry_id", entry.ID, "position", entry.Position)
	return connect.NewResponse(&api.CreateRegistrationResponse{
		WaitlistEntry: toAPIWaitlistEntry(entry),
		Waitlisted:    true,
	}), nil
}

// CancelRegistration cancels an active registration, freeing its slot.
func (s *RegistrationService) CancelRegistration(ctx context.Context, req *connect.Request[api.CancelRegistrationRequest]) (*connect.Response[api.CancelRegistrationResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.RegistrationId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("registration id required"))
	}

	if err := s.store.CancelRegistration(ctx, orgID, req.Msg.RegistrationId); err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Registration cancelled", "org_id", orgID, "registration_id", req.Msg.RegistrationId)
	return connect.NewResponse(&api.CancelRegistrationResponse{}), nil
}
