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

// CreateOrganization persists a new organization.
func (s *SQLiteStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if org.CreatedAt == 0 {
		org.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO organizations (id, name, created_at) VALUES (?, ?, ?)",
		org.ID, org.Name, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

// CreateUser inserts a new staff user.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, org_id, email, name, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.OrgID, user.Email, user.Name, user.PasswordHash, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns (nil, nil) when no user has that email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, org_id, email, name, password_hash, role, created_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(&user.ID, &user.OrgID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, org_id, email, name, password_hash, role, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&user.ID, &user.OrgID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateAthlete persists a new roster entry.
func (s *SQLiteStore) CreateAthlete(ctx context.Context, athlete *models.Athlete) error {
	if athlete.ID == "" {
		athlete.ID = uuid.New().String()
	}
	if athlete.CreatedAt == 0 {
		athlete.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO athletes (id, org_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)",
		athlete.ID, athlete.OrgID, athlete.Name, nullable(athlete.Email), athlete.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert athlete: %w", err)
	}
	return nil
}

// GetAthlete retrieves an athlete scoped to the organization.
func (s *SQLiteStore) GetAthlete(ctx context.Context, orgID, id string) (*models.Athlete, error) {
	athlete := &models.Athlete{}
	var email sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, org_id, name, email, created_at FROM athletes WHERE id = ? AND org_id = ?",
		id, orgID,
	).Scan(&athlete.ID, &athlete.OrgID, &athlete.Name, &email, &athlete.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("athlete %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	athlete.Email = email.String
	return athlete, nil
}

// ListAthletes returns the organization's roster, newest first.
func (s *SQLiteStore) ListAthletes(ctx context.Context, orgID string) ([]models.Athlete, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, org_id, name, email, created_at FROM athletes WHERE org_id = ? ORDER BY created_at DESC, id",
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	defer rows.Close()

	var athletes []models.Athlete
	for rows.Next() {
		var a models.Athlete
		var email sql.NullString
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan athlete: %w", err)
		}
		a.Email = email.String
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate athletes: %w", err)
	}
	return athletes, nil
}

// GetFeatureFlag returns the stored flag value; found is false when no row
// exists for (orgID, feature).
func (s *SQLiteStore) GetFeatureFlag(ctx context.Context, orgID, feature string) (bool, bool, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx,
		"SELECT enabled FROM feature_flags WHERE org_id = ? AND feature = ?",
		orgID, feature,
	).Scan(&enabled)

	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to get feature flag: %w", err)
	}
	return enabled != 0, true, nil
}

// SetFeatureFlag upserts the stored flag value for (orgID, feature).
func (s *SQLiteStore) SetFeatureFlag(ctx context.Context, orgID, feature string, enabled bool) error {
	val := 0
	if enabled {
		val = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feature_flags (org_id, feature, enabled) VALUES (?, ?, ?)
		 ON CONFLICT (org_id, feature) DO UPDATE SET enabled = excluded.enabled`,
		orgID, feature, val,
	)
	if err != nil {
		return fmt.Errorf("failed to set feature flag: %w", err)
	}
	return nil
}
