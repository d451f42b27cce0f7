package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goatos/goatos/internal/ledger"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
)

const registerColumns = "id, org_id, date, status, opening_balance, closing_balance, notes, created_at"

const movementColumns = `id, register_id, org_id, type, amount, description,
	reference_type, reference_id, recorded_by, created_at`

// OpenRegister creates an open register for the organization. The open-check
// shares a transaction with the insert, and the partial unique index on open
// registers backs it up at the constraint level.
func (s *SQLiteStore) OpenRegister(ctx context.Context, register *models.CashRegister) error {
	if register.ID == "" {
		register.ID = uuid.New().String()
	}
	if register.CreatedAt == 0 {
		register.CreatedAt = time.Now().Unix()
	}
	register.Status = models.RegisterOpen
	register.ClosingBalance = nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var open int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cash_registers WHERE org_id = ? AND status = ?",
		register.OrgID, string(models.RegisterOpen),
	).Scan(&open)
	if err != nil {
		return fmt.Errorf("failed to check for open register: %w", err)
	}
	if open > 0 {
		return fmt.Errorf("organization %s: %w", register.OrgID, storage.ErrAlreadyOpen)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cash_registers (id, org_id, date, status, opening_balance, closing_balance, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		register.ID, register.OrgID, register.Date, string(register.Status),
		register.OpeningBalance, nullable(register.Notes), register.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert register: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetOpenRegister returns the organization's open register, or (nil, nil)
// when none is open. The nil result is the soft-failure path for cash
// payments: recording proceeds, the drawer just goes untracked.
func (s *SQLiteStore) GetOpenRegister(ctx context.Context, orgID string) (*models.CashRegister, error) {
	register, err := scanRegister(s.db.QueryRowContext(ctx,
		"SELECT "+registerColumns+" FROM cash_registers WHERE org_id = ? AND status = ?",
		orgID, string(models.RegisterOpen),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return register, err
}

// GetRegister retrieves a register scoped to the organization.
func (s *SQLiteStore) GetRegister(ctx context.Context, orgID, id string) (*models.CashRegister, error) {
	register, err := scanRegister(s.db.QueryRowContext(ctx,
		"SELECT "+registerColumns+" FROM cash_registers WHERE id = ? AND org_id = ?",
		id, orgID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("register %s: %w", id, storage.ErrNotFound)
	}
	return register, err
}

// CreateMovement inserts a cash movement. The unique index on
// (reference_type, reference_id) makes retries idempotent: a duplicate
// insert affects zero rows and surfaces as ErrDuplicateEntry.
func (s *SQLiteStore) CreateMovement(ctx context.Context, movement *models.CashMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt == 0 {
		movement.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cash_movements
		 (id, register_id, org_id, type, amount, description, reference_type, reference_id, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (reference_type, reference_id) DO NOTHING`,
		movement.ID, movement.RegisterID, movement.OrgID, string(movement.Type),
		movement.Amount, nullable(movement.Description),
		string(movement.Ref.Type), movement.Ref.ID,
		nullable(movement.RecordedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("movement for %s/%s: %w",
			movement.Ref.Type, movement.Ref.ID, storage.ErrDuplicateEntry)
	}
	return nil
}

// ListMovements returns a register's movements, oldest first.
func (s *SQLiteStore) ListMovements(ctx context.Context, orgID, registerID string) ([]models.CashMovement, error) {
	return s.queryMovements(ctx,
		"SELECT "+movementColumns+" FROM cash_movements WHERE org_id = ? AND register_id = ? ORDER BY created_at, id",
		orgID, registerID,
	)
}

// ListMovementsByDate returns all movements attached to registers with the
// given normalized date. A day can have at most one register in practice,
// but the join keeps the aggregate honest if history ever gets backfilled.
func (s *SQLiteStore) ListMovementsByDate(ctx context.Context, orgID string, date int64) ([]models.CashMovement, error) {
	return s.queryMovements(ctx,
		`SELECT m.id, m.register_id, m.org_id, m.type, m.amount, m.description,
		        m.reference_type, m.reference_id, m.recorded_by, m.created_at
		 FROM cash_movements m
		 JOIN cash_registers r ON r.id = m.register_id
		 WHERE m.org_id = ? AND r.date = ?
		 ORDER BY m.created_at, m.id`,
		orgID, date,
	)
}

// CloseRegister recomputes the closing balance from the movement set and
// marks the register closed, all in one transaction. Closing is one-way.
func (s *SQLiteStore) CloseRegister(ctx context.Context, orgID, id, notes string) (*models.CashRegister, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	register, err := scanRegister(tx.QueryRowContext(ctx,
		"SELECT "+registerColumns+" FROM cash_registers WHERE id = ? AND org_id = ?",
		id, orgID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("register %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if register.Status == models.RegisterClosed {
		return nil, fmt.Errorf("register %s: %w", id, storage.ErrAlreadyClosed)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT "+movementColumns+" FROM cash_movements WHERE register_id = ?",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, err
	}

	closing := ledger.ClosingBalance(register.OpeningBalance, movements)

	if notes != "" {
		register.Notes = notes
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE cash_registers SET status = ?, closing_balance = ?, notes = ? WHERE id = ?",
		string(models.RegisterClosed), closing, nullable(register.Notes), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to close register: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	register.Status = models.RegisterClosed
	register.ClosingBalance = &closing
	return register, nil
}

func (s *SQLiteStore) queryMovements(ctx context.Context, query string, args ...any) ([]models.CashMovement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows *sql.Rows) ([]models.CashMovement, error) {
	defer rows.Close()

	var movements []models.CashMovement
	for rows.Next() {
		var m models.CashMovement
		var mType, refType string
		var description, recordedBy sql.NullString
		if err := rows.Scan(&m.ID, &m.RegisterID, &m.OrgID, &mType, &m.Amount,
			&description, &refType, &m.Ref.ID, &recordedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		m.Type = models.MovementType(mType)
		m.Ref.Type = models.ReferenceType(refType)
		m.Description = description.String
		m.RecordedBy = recordedBy.String
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

func scanRegister(sc rowScanner) (*models.CashRegister, error) {
	register := &models.CashRegister{}
	var status string
	var closing sql.NullInt64
	var notes sql.NullString
	err := sc.Scan(&register.ID, &register.OrgID, &register.Date, &status,
		&register.OpeningBalance, &closing, &notes, &register.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan register: %w", err)
	}
	register.Status = models.RegisterStatus(status)
	if closing.Valid {
		v := closing.Int64
		register.ClosingBalance = &v
	}
	register.Notes = notes.String
	return register, nil
}
