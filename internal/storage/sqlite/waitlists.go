package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
)

// waitlistColumns is the shared select list for waitlist entry scans.
const waitlistColumns = `id, org_id, athlete_id, reference_type, reference_id,
	priority, status, position, reason, notes, expires_at, created_at`

// priorityOrder sorts high before medium before low; unknown values sort
// last. Position breaks ties within a band (FIFO).
const priorityOrder = `CASE priority
	WHEN 'high' THEN 0
	WHEN 'medium' THEN 1
	WHEN 'low' THEN 2
	ELSE 3 END`

// CreateWaitlistEntry enqueues an athlete. The duplicate check, position
// assignment and insert share one transaction so concurrent enqueues for the
// same reference cannot collide on a position.
func (s *SQLiteStore) CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	entry.Status = models.WaitlistWaiting

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM waitlist_entries
		 WHERE athlete_id = ? AND reference_type = ? AND reference_id = ? AND status = ?`,
		entry.AthleteID, string(entry.Ref.Type), entry.Ref.ID, string(models.WaitlistWaiting),
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for existing entry: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("athlete %s already waiting for %s/%s: %w",
			entry.AthleteID, entry.Ref.Type, entry.Ref.ID, storage.ErrDuplicateEntry)
	}

	// Append: next integer after the current max position for this reference.
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist_entries
		 WHERE org_id = ? AND reference_type = ? AND reference_id = ?`,
		entry.OrgID, string(entry.Ref.Type), entry.Ref.ID,
	).Scan(&entry.Position)
	if err != nil {
		return fmt.Errorf("failed to assign position: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO waitlist_entries
		 (id, org_id, athlete_id, reference_type, reference_id, priority, status, position, reason, notes, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.OrgID, entry.AthleteID, string(entry.Ref.Type), entry.Ref.ID,
		string(entry.Priority), string(entry.Status), entry.Position,
		nullable(entry.Reason), nullable(entry.Notes), nullableInt(entry.ExpiresAt), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetWaitlistEntry retrieves an entry scoped to the organization.
func (s *SQLiteStore) GetWaitlistEntry(ctx context.Context, orgID, id string) (*models.WaitlistEntry, error) {
	entry, err := scanWaitlistEntry(s.db.QueryRowContext(ctx,
		"SELECT "+waitlistColumns+" FROM waitlist_entries WHERE id = ? AND org_id = ?",
		id, orgID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("waitlist entry %s: %w", id, storage.ErrNotFound)
	}
	return entry, err
}

// ListWaitlist returns waiting entries for ref ordered by priority band then
// position ascending.
func (s *SQLiteStore) ListWaitlist(ctx context.Context, orgID string, ref models.Reference) ([]models.WaitlistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist_entries
		 WHERE org_id = ? AND reference_type = ? AND reference_id = ? AND status = ?
		 ORDER BY `+priorityOrder+`, position`,
		orgID, string(ref.Type), ref.ID, string(models.WaitlistWaiting),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WaitlistEntry
	for rows.Next() {
		entry, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waitlist: %w", err)
	}
	return entries, nil
}

// PromoteWaitlistEntry marks a waiting entry promoted and creates the
// registration in the same transaction. No capacity re-check: promotion is
// an explicit administrative action and the caller owns the decision.
func (s *SQLiteStore) PromoteWaitlistEntry(ctx context.Context, orgID, id string) (*models.WaitlistEntry, *models.Registration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := scanWaitlistEntry(tx.QueryRowContext(ctx,
		"SELECT "+waitlistColumns+" FROM waitlist_entries WHERE id = ? AND org_id = ?",
		id, orgID,
	))
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("waitlist entry %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	if entry.Status != models.WaitlistWaiting {
		// Terminal states never transition; treat like a missing entry.
		return nil, nil, fmt.Errorf("waitlist entry %s is %s: %w", id, entry.Status, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE waitlist_entries SET status = ? WHERE id = ?",
		string(models.WaitlistPromoted), id,
	); err != nil {
		return nil, nil, fmt.Errorf("failed to promote waitlist entry: %w", err)
	}
	entry.Status = models.WaitlistPromoted

	reg := &models.Registration{
		OrgID:     entry.OrgID,
		AthleteID: entry.AthleteID,
		Ref:       entry.Ref,
	}
	if err := insertRegistrationTx(ctx, tx, reg); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, reg, nil
}

// CancelWaitlistEntry flips a waiting entry to cancelled.
func (s *SQLiteStore) CancelWaitlistEntry(ctx context.Context, orgID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE waitlist_entries SET status = ? WHERE id = ? AND org_id = ? AND status = ?",
		string(models.WaitlistCancelled), id, orgID, string(models.WaitlistWaiting),
	)
	if err != nil {
		return fmt.Errorf("failed to cancel waitlist entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("waitlist entry %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// BulkUpdateWaitlistPriority sets the priority on every waiting entry in ids
// with a single WHERE id IN (...) statement.
func (s *SQLiteStore) BulkUpdateWaitlistPriority(ctx context.Context, orgID string, ids []string, priority models.WaitlistPriority) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+3)
	args = append(args, string(priority), orgID, string(models.WaitlistWaiting))
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE waitlist_entries SET priority = ? WHERE org_id = ? AND status = ? AND id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update priority: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// BulkDeleteWaitlistEntries removes the entries in ids with a single
// WHERE id IN (...) statement.
func (s *SQLiteStore) BulkDeleteWaitlistEntries(ctx context.Context, orgID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, orgID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM waitlist_entries WHERE org_id = ? AND id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete waitlist entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ExpireWaitlistEntries flips waiting entries whose expires_at has passed to
// expired, across all organizations. Run by the background sweeper.
func (s *SQLiteStore) ExpireWaitlistEntries(ctx context.Context, now int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE waitlist_entries SET status = ?
		 WHERE status = ? AND expires_at IS NOT NULL AND expires_at < ?`,
		string(models.WaitlistExpired), string(models.WaitlistWaiting), now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire waitlist entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanWaitlistEntry(sc rowScanner) (*models.WaitlistEntry, error) {
	entry := &models.WaitlistEntry{}
	var refType, priority, status string
	var reason, notes sql.NullString
	var expiresAt sql.NullInt64
	err := sc.Scan(&entry.ID, &entry.OrgID, &entry.AthleteID, &refType, &entry.Ref.ID,
		&priority, &status, &entry.Position, &reason, &notes, &expiresAt, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
	}
	entry.Ref.Type = models.ReferenceType(refType)
	entry.Priority = models.WaitlistPriority(priority)
	entry.Status = models.WaitlistStatus(status)
	entry.Reason = reason.String
	entry.Notes = notes.String
	entry.ExpiresAt = expiresAt.Int64
	return entry, nil
}
