package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

// RosterService implements the RosterService RPC interface.
type RosterService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRosterService creates a new roster service.
func NewRosterService(store storage.Store, logger *slog.Logger) *RosterService {
	return &RosterService{store: store, logger: logger}
}

// CreateAthlete adds an athlete to the organization's roster.
func (s *RosterService) CreateAthlete(ctx context.Context, req *connect.Request[api.CreateAthleteRequest]) (*connect.Response[api.CreateAthleteResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("athlete name required"))
	}

	athlete := &models.Athlete{
		OrgID: orgID,
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
	}
	if err := s.store.CreateAthlete(ctx, athlete); err != nil {
		s.logger.Error("Failed to create athlete", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Athlete created", "org_id", orgID, "athlete_id", athlete.ID)
	return connect.NewResponse(&api.CreateAthleteResponse{Athlete: toAPIAthlete(athlete)}), nil
}

// ListAthletes returns the organization's roster.
func (s *RosterService) ListAthletes(ctx context.Context, req *connect.Request[api.ListAthletesRequest]) (*connect.Response[api.ListAthletesResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	athletes, err := s.store.ListAthletes(ctx, orgID)
	if err != nil {
		s.logger.Error("Failed to list athletes", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListAthletesResponse{Athletes: make([]*api.Athlete, 0, len(athletes))}
	for i := range athletes {
		resp.Athletes = append(resp.Athletes, toAPIAthlete(&athletes[i]))
	}
	return connect.NewResponse(resp), nil
}
