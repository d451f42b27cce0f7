package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goatos/goatos/internal/capacity"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
)

// CreateTrainingGroup persists a new group.
func (s *SQLiteStore) CreateTrainingGroup(ctx context.Context, group *models.TrainingGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO training_groups (id, org_id, name, max_capacity, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.OrgID, group.Name, nullCapacity(group.MaxCapacity), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert training group: %w", err)
	}
	return nil
}

// GetTrainingGroup retrieves a group scoped to the organization.
func (s *SQLiteStore) GetTrainingGroup(ctx context.Context, orgID, id string) (*models.TrainingGroup, error) {
	group := &models.TrainingGroup{}
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, org_id, name, max_capacity, created_at FROM training_groups WHERE id = ? AND org_id = ?",
		id, orgID,
	).Scan(&group.ID, &group.OrgID, &group.Name, &max, &group.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("training group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get training group: %w", err)
	}
	group.MaxCapacity = capacityPtr(max)
	return group, nil
}

// CreateTrainingSession persists a new session.
func (s *SQLiteStore) CreateTrainingSession(ctx context.Context, session *models.TrainingSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO training_sessions (id, org_id, group_id, title, starts_at, max_capacity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.OrgID, nullable(session.GroupID), session.Title,
		session.StartsAt, nullCapacity(session.MaxCapacity), session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert training session: %w", err)
	}
	return nil
}

// GetTrainingSession retrieves a session scoped to the organization.
func (s *SQLiteStore) GetTrainingSession(ctx context.Context, orgID, id string) (*models.TrainingSession, error) {
	return scanSession(s.db.QueryRowContext(ctx,
		`SELECT id, org_id, group_id, title, starts_at, max_capacity, created_at
		 FROM training_sessions WHERE id = ? AND org_id = ?`,
		id, orgID,
	), id)
}

// ListTrainingSessions returns the org's sessions ordered by start time.
func (s *SQLiteStore) ListTrainingSessions(ctx context.Context, orgID, groupID string) ([]models.TrainingSession, error) {
	query := `SELECT id, org_id, group_id, title, starts_at, max_capacity, created_at
		 FROM training_sessions WHERE org_id = ?`
	args := []any{orgID}
	if groupID != "" {
		query += " AND group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY starts_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list training sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.TrainingSession
	for rows.Next() {
		sess, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate training sessions: %w", err)
	}
	return sessions, nil
}

// HolderCapacity resolves the capacity holder behind ref and returns its
// ceiling plus the live count of active registrations.
func (s *SQLiteStore) HolderCapacity(ctx context.Context, orgID string, ref models.Reference) (*int64, int64, error) {
	maxCapacity, err := s.holderMaxCapacity(ctx, s.db, orgID, ref)
	if err != nil {
		return nil, 0, err
	}
	current, err := s.countActiveRegistrations(ctx, s.db, orgID, ref)
	if err != nil {
		return nil, 0, err
	}
	return maxCapacity, current, nil
}

// querier lets the capacity helpers run against either the pool or a tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) holderMaxCapacity(ctx context.Context, q querier, orgID string, ref models.Reference) (*int64, error) {
	var table string
	switch ref.Type {
	case models.ReferenceTrainingSession:
		table = "training_sessions"
	case models.ReferenceAthleteGroup:
		table = "training_groups"
	default:
		return nil, fmt.Errorf("reference type %q: %w", ref.Type, storage.ErrNotFound)
	}

	var max sql.NullInt64
	err := q.QueryRowContext(ctx,
		"SELECT max_capacity FROM "+table+" WHERE id = ? AND org_id = ?",
		ref.ID, orgID,
	).Scan(&max)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("holder %s/%s: %w", ref.Type, ref.ID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holder capacity: %w", err)
	}
	return capacityPtr(max), nil
}

func (s *SQLiteStore) countActiveRegistrations(ctx context.Context, q querier, orgID string, ref models.Reference) (int64, error) {
	var count int64
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations
		 WHERE org_id = ? AND reference_type = ? AND reference_id = ? AND status = ?`,
		orgID, string(ref.Type), ref.ID, string(models.RegistrationActive),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

// CreateRegistration inserts an active registration, running the capacity
// check and the insert in one transaction so two concurrent registrations
// cannot both take the last slot.
func (s *SQLiteStore) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.CreatedAt == 0 {
		reg.CreatedAt = time.Now().Unix()
	}
	reg.Status = models.RegistrationActive

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	maxCapacity, err := s.holderMaxCapacity(ctx, tx, reg.OrgID, reg.Ref)
	if err != nil {
		return err
	}
	current, err := s.countActiveRegistrations(ctx, tx, reg.OrgID, reg.Ref)
	if err != nil {
		return err
	}
	if !capacity.HasCapacity(capacity.Holder{MaxCapacity: maxCapacity, CurrentRegistrations: current}) {
		return fmt.Errorf("holder %s/%s is full: %w", reg.Ref.Type, reg.Ref.ID, storage.ErrCapacityExceeded)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (id, org_id, athlete_id, reference_type, reference_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		reg.ID, reg.OrgID, reg.AthleteID, string(reg.Ref.Type), reg.Ref.ID,
		string(reg.Status), reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// The partial unique index on active registrations absorbed it.
		return fmt.Errorf("athlete %s already registered for %s/%s: %w",
			reg.AthleteID, reg.Ref.Type, reg.Ref.ID, storage.ErrDuplicateEntry)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertRegistrationTx inserts a registration inside an existing transaction
// without a capacity check. Used by waitlist promotion.
func insertRegistrationTx(ctx context.Context, tx *sql.Tx, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.CreatedAt == 0 {
		reg.CreatedAt = time.Now().Unix()
	}
	reg.Status = models.RegistrationActive

	_, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (id, org_id, athlete_id, reference_type, reference_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.OrgID, reg.AthleteID, string(reg.Ref.Type), reg.Ref.ID,
		string(reg.Status), reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// CancelRegistration flips an active registration to cancelled.
func (s *SQLiteStore) CancelRegistration(ctx context.Context, orgID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE registrations SET status = ? WHERE id = ? AND org_id = ? AND status = ?",
		string(models.RegistrationCancelled), id, orgID, string(models.RegistrationActive),
	)
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("registration %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows for the session scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row *sql.Row, id string) (*models.TrainingSession, error) {
	sess, err := scanSessionRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("training session %s: %w", id, storage.ErrNotFound)
	}
	return sess, err
}

func scanSessionRow(sc rowScanner) (*models.TrainingSession, error) {
	sess := &models.TrainingSession{}
	var groupID sql.NullString
	var max sql.NullInt64
	err := sc.Scan(&sess.ID, &sess.OrgID, &groupID, &sess.Title, &sess.StartsAt, &max, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan training session: %w", err)
	}
	sess.GroupID = groupID.String
	sess.MaxCapacity = capacityPtr(max)
	return sess, nil
}

func nullCapacity(max *int64) any {
	if max == nil {
		return nil
	}
	return *max
}

func capacityPtr(max sql.NullInt64) *int64 {
	if !max.Valid {
		return nil
	}
	v := max.Int64
	return &v
}
