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

// WaitlistService implements the WaitlistService RPC interface.
type WaitlistService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewWaitlistService creates a new waitlist service.
func NewWaitlistService(store storage.Store, logger *slog.Logger) *WaitlistService {
	return &WaitlistService{store: store, logger: logger}
}

// Enqueue adds an athlete to the waitlist for a session or group.
func (s *WaitlistService) Enqueue(ctx context.Context, req *connect.Request[api.EnqueueWaitlistRequest]) (*connect.Response[api.EnqueueWaitlistResponse], error) {
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
	priority := models.WaitlistPriority(req.Msg.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("priority must be high, medium or low"))
	}
	if _, err := s.store.GetAthlete(ctx, orgID, req.Msg.AthleteId); err != nil {
		return nil, storageError(err)
	}

	entry := &models.WaitlistEntry{
		OrgID:     orgID,
		AthleteID: req.Msg.AthleteId,
		Ref:       ref,
		Priority:  priority,
		Status:    models.WaitlistWaiting,
		Reason:    req.Msg.Reason,
		ExpiresAt: req.Msg.ExpiresAt,
	}
	if err := s.store.CreateWaitlistEntry(ctx, entry); err != nil {
		s.logger.Error("Failed to enqueue waitlist entry", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Waitlist entry enqueued", "org_id", orgID, "entry_id", entry.ID, "priority", entry.Priority, "position", entry.Position)
	return connect.NewResponse(&api.EnqueueWaitlistResponse{Entry: toAPIWaitlistEntry(entry)}), nil
}

// List returns the waiting entries for a reference in promotion order.
func (s *WaitlistService) List(ctx context.Context, req *connect.Request[api.ListWaitlistRequest]) (*connect.Response[api.ListWaitlistResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ref := models.Reference{Type: models.ReferenceType(req.Msg.ReferenceType), ID: req.Msg.ReferenceId}
	if err := ref.ValidHolder(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	entries, err := s.store.ListWaitlist(ctx, orgID, ref)
	if err != nil {
		s.logger.Error("Failed to list waitlist", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListWaitlistResponse{Entries: make([]*api.WaitlistEntry, 0, len(entries))}
	for i := range entries {
		resp.Entries = append(resp.Entries, toAPIWaitlistEntry(&entries[i]))
	}
	return connect.NewResponse(resp), nil
}

// Promote converts a waiting entry into an active registration. Promotion is
// a staff decision and is honored even when the holder is already full.
func (s *WaitlistService) Promote(ctx context.Context, req *connect.Request[api.PromoteWaitlistRequest]) (*connect.Response[api.PromoteWaitlistResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.EntryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("entry id required"))
	}

	entry, reg, err := s.store.PromoteWaitlistEntry(ctx, orgID, req.Msg.EntryId)
	if err != nil {
		s.logger.Warn("Failed to promote waitlist entry", "org_id", orgID, "entry_id", req.Msg.EntryId, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Waitlist entry promoted", "org_id", orgID, "entry_id", entry.ID, "registration_id", reg.ID)
	return connect.NewResponse(&api.PromoteWaitlistResponse{
		Entry:        toAPIWaitlistEntry(entry),
		Registration: toAPIRegistration(reg),
	}), nil
}

// Cancel removes a waiting entry from the queue.
func (s *WaitlistService) Cancel(ctx context.Context, req *connect.Request[api.CancelWaitlistRequest]) (*connect.Response[api.CancelWaitlistResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.EntryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("entry id required"))
	}

	if err := s.store.CancelWaitlistEntry(ctx, orgID, req.Msg.EntryId); err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Waitlist entry cancelled", "org_id", orgID, "entry_id", req.Msg.EntryId)
	return connect.NewResponse(&api.CancelWaitlistResponse{}), nil
}

// BulkUpdatePriority moves a batch of waiting entries into another priority
// band in one statement. Admin only.
func (s *WaitlistService) BulkUpdatePriority(ctx context.Context, req *connect.Request[api.BulkUpdatePriorityRequest]) (*connect.Response[api.BulkUpdatePriorityResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if len(req.Msg.EntryIds) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("entry ids required"))
	}
	priority := models.WaitlistPriority(req.Msg.Priority)
	if !priority.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("priority must be high, medium or low"))
	}

	updated, err := s.store.BulkUpdateWaitlistPriority(ctx, orgID, req.Msg.EntryIds, priority)
	if err != nil {
		s.logger.Error("Bulk priority update failed", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Bulk priority update", "org_id", orgID, "requested", len(req.Msg.EntryIds), "updated", updated)
	return connect.NewResponse(&api.BulkUpdatePriorityResponse{UpdatedCount: updated}), nil
}

// BulkDelete removes a batch of entries in one statement. Admin only.
func (s *WaitlistService) BulkDelete(ctx context.Context, req *connect.Request[api.BulkDeleteWaitlistRequest]) (*connect.Response[api.BulkDeleteWaitlistResponse], error) {
	orgID, err := orgFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if len(req.Msg.EntryIds) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("entry ids required"))
	}

	deleted, err := s.store.BulkDeleteWaitlistEntries(ctx, orgID, req.Msg.EntryIds)
	if err != nil {
		s.logger.Error("Bulk delete failed", "org_id", orgID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Bulk delete", "org_id", orgID, "requested", len(req.Msg.EntryIds), "deleted", deleted)
	return connect.NewResponse(&api.BulkDeleteWaitlistResponse{DeletedCount: deleted}), nil
}
