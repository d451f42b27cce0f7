package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/capacity"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
	"github.com/goatos/goatos/pkg/api"
)

// week is the spacing between generated session occurrences.
const week = 7 * 24 * time.Hour

// TrainingService implements the TrainingService RPC interface: groups,
// sessions and the live capacity view over either.
type TrainingService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTrainingService creates a new training service.
func NewTrainingService(store storage.Store, logger *slog.Logger) *TrainingService {
	return &TrainingService{store: store, logger: logger}
}

// CreateGroup creates a training group. Admin only.
func (s *TrainingService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name required"))
	}
	if req.Msg.MaxCapacity != nil && *req.Msg.MaxCapacity < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("max capacity must not be negative"))
	}

	group := &models.TrainingGroup{
		OrgID:       orgID,
		Name:        req.Msg.Name,
		MaxCapacity: req.Msg.MaxCapacity,
	}
	if err := s.store.CreateTrainingGroup(ctx, group); err != nil {
		s.logger.Error("Failed to create group", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Training group created", "org_id", orgID, "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// CreateSession creates a single training session. Admin only.
func (s *TrainingService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := validateSessionInput(req.Msg.Title, req.Msg.StartsAt, req.Msg.MaxCapacity); err != nil {
		return nil, err
	}
	if req.Msg.GroupId != "" {
		if _, err := s.store.GetTrainingGroup(ctx, orgID, req.Msg.GroupId); err != nil {
			return nil, storageError(err)
		}
	}

	session := &models.TrainingSession{
		OrgID:       orgID,
		GroupID:     req.Msg.GroupId,
		Title:       req.Msg.Title,
		StartsAt:    req.Msg.StartsAt,
		MaxCapacity: req.Msg.MaxCapacity,
	}
	if err := s.store.CreateTrainingSession(ctx, session); err != nil {
		s.logger.Error("Failed to create session", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Training session created", "org_id", orgID, "session_id", session.ID)
	return connect.NewResponse(&api.CreateSessionResponse{Session: toAPISession(session)}), nil
}

// GenerateSessions creates Count weekly occurrences starting at
// FirstStartsAt. Admin only.
func (s *TrainingService) GenerateSessions(ctx context.Context, req *connect.Request[api.GenerateSessionsRequest]) (*connect.Response[api.GenerateSessionsResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := validateSessionInput(req.Msg.Title, req.Msg.FirstStartsAt, req.Msg.MaxCapacity); err != nil {
		return nil, err
	}
	if req.Msg.Count < 1 || req.Msg.Count > 52 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("count must be between 1 and 52"))
	}
	if req.Msg.GroupId != "" {
		if _, err := s.store.GetTrainingGroup(ctx, orgID, req.Msg.GroupId); err != nil {
			return nil, storageError(err)
		}
	}

	sessions := make([]*api.TrainingSession, 0, req.Msg.Count)
	for i := int32(0); i < req.Msg.Count; i++ {
		session := &models.TrainingSession{
			OrgID:       orgID,
			GroupID:     req.Msg.GroupId,
			Title:       req.Msg.Title,
			StartsAt:    req.Msg.FirstStartsAt + int64(i)*int64(week.Seconds()),
			MaxCapacity: req.Msg.MaxCapacity,
		}
		if err := s.store.CreateTrainingSession(ctx, session); err != nil {
			s.logger.Error("Failed to generate session", "org_id", orgID, "occurrence", i, "error", err)
			return nil, storageError(err)
		}
		sessions = append(sessions, toAPISession(session))
	}

	s.logger.Info("Sessions generated", "org_id", orgID, "count", len(sessions))
	return connect.NewResponse(&api.GenerateSessionsResponse{Sessions: sessions}), nil
}

// ListSessions returns the org's sessions, optionally narrowed to one group.
func (s *TrainingService) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.store.ListTrainingSessions(ctx, orgID, req.Msg.GroupId)
	if err != nil {
		s.logger.Error("Failed to list sessions", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListSessionsResponse{Sessions: make([]*api.TrainingSession, 0, len(sessions))}
	for i := range sessions {
		resp.Sessions = append(resp.Sessions, toAPISession(&sessions[i]))
	}
	return connect.NewResponse(resp), nil
}

// GetCapacity returns the live utilization of a session or group.
func (s *TrainingService) GetCapacity(ctx context.Context, req *connect.Request[api.GetCapacityRequest]) (*connect.Response[api.GetCapacityResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ref := models.Reference{Type: models.ReferenceType(req.Msg.ReferenceType), ID: req.Msg.ReferenceId}
	if err := ref.ValidHolder(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	maxCapacity, current, err := s.store.HolderCapacity(ctx, orgID, ref)
	if err != nil {
		return nil, storageError(err)
	}

	holder := capacity.Holder{MaxCapacity: maxCapacity, CurrentRegistrations: current}
	return connect.NewResponse(&api.GetCapacityResponse{
		MaxCapacity:          maxCapacity,
		CurrentRegistrations: current,
		Remaining:            capacity.Remaining(holder),
		HasCapacity:          capacity.HasCapacity(holder),
	}), nil
}

func validateSessionInput(title string, startsAt int64, maxCapacity *int64) error {
	if title == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("session title required"))
	}
	if startsAt <= 0 {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("start time required"))
	}
	if maxCapacity != nil && *maxCapacity < 0 {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("max capacity must not be negative"))
	}
	return nil
}
