package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goatos/goatos/internal/models"
)

// CreatePayment persists a payment record.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, org_id, athlete_id, amount, method, description, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.OrgID, payment.AthleteID, payment.Amount,
		string(payment.Method), nullable(payment.Description),
		nullable(payment.RecordedBy), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// CreateExpense persists an expense record.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, org_id, amount, method, description, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.OrgID, expense.Amount,
		string(expense.Method), nullable(expense.Description),
		nullable(expense.RecordedBy), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListPayments returns the org's payments, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, orgID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, org_id, athlete_id, amount, method, description, recorded_by, created_at
		 FROM payments WHERE org_id = ? ORDER BY created_at DESC, id`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var method string
		var description, recordedBy sql.NullString
		if err := rows.Scan(&p.ID, &p.OrgID, &p.AthleteID, &p.Amount, &method,
			&description, &recordedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Method = models.PaymentMethod(method)
		p.Description = description.String
		p.RecordedBy = recordedBy.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
