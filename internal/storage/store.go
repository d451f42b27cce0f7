// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/goatos/goatos/internal/models"
)

// Sentinel errors surfaced by Store implementations. Services translate
// these into RPC error codes; a cross-tenant ID lookup returns ErrNotFound
// exactly like a genuinely missing ID, so tenant existence never leaks.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrAlreadyOpen       = errors.New("an open register already exists")
	ErrAlreadyClosed     = errors.New("register already closed")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store defines the interface for GOAT OS storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every method that reads or mutates tenant data takes orgID explicitly and
// scopes its queries with it.
type Store interface {
	// --- organizations, users, athletes ---

	// CreateOrganization persists a new organization, filling ID/CreatedAt.
	CreateOrganization(ctx context.Context, org *models.Organization) error

	// CreateUser persists a new staff user, filling ID/CreatedAt.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns (nil, nil) when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateAthlete persists a new roster entry, filling ID/CreatedAt.
	CreateAthlete(ctx context.Context, athlete *models.Athlete) error

	// GetAthlete returns ErrNotFound for missing or cross-tenant IDs.
	GetAthlete(ctx context.Context, orgID, id string) (*models.Athlete, error)

	// ListAthletes returns the organization's roster, newest first.
	ListAthletes(ctx context.Context, orgID string) ([]models.Athlete, error)

	// --- capacity holders and registrations ---

	// CreateTrainingGroup persists a new group, filling ID/CreatedAt.
	CreateTrainingGroup(ctx context.Context, group *models.TrainingGroup) error

	// GetTrainingGroup returns ErrNotFound for missing or cross-tenant IDs.
	GetTrainingGroup(ctx context.Context, orgID, id string) (*models.TrainingGroup, error)

	// CreateTrainingSession persists a new session, filling ID/CreatedAt.
	CreateTrainingSession(ctx context.Context, session *models.TrainingSession) error

	// GetTrainingSession returns ErrNotFound for missing or cross-tenant IDs.
	GetTrainingSession(ctx context.Context, orgID, id string) (*models.TrainingSession, error)

	// ListTrainingSessions returns the org's sessions ordered by start time;
	// groupID narrows to one group when non-empty.
	ListTrainingSessions(ctx context.Context, orgID, groupID string) ([]models.TrainingSession, error)

	// HolderCapacity resolves the holder behind ref and returns its
	// configured ceiling (nil = unbounded) and live count of active
	// registrations. Returns ErrNotFound when the holder does not exist.
	HolderCapacity(ctx context.Context, orgID string, ref models.Reference) (maxCapacity *int64, current int64, err error)

	// CreateRegistration inserts an active registration for ref inside a
	// single transaction with the capacity check; returns
	// ErrCapacityExceeded when the holder is full and ErrDuplicateEntry when
	// the athlete already holds an active registration for ref.
	CreateRegistration(ctx context.Context, reg *models.Registration) error

	// CancelRegistration flips an active registration to cancelled, freeing
	// its slot. Returns ErrNotFound when missing, cross-tenant, or not
	// active.
	CancelRegistration(ctx context.Context, orgID, id string) error

	// --- waitlist ---

	// CreateWaitlistEntry enqueues an athlete, assigning the next position
	// for the reference. Returns ErrDuplicateEntry when the athlete already
	// has a waiting entry for the same reference.
	CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error

	// GetWaitlistEntry returns ErrNotFound for missing or cross-tenant IDs.
	GetWaitlistEntry(ctx context.Context, orgID, id string) (*models.WaitlistEntry, error)

	// ListWaitlist returns waiting entries for ref ordered by priority band
	// (high, medium, low) then position ascending.
	ListWaitlist(ctx context.Context, orgID string, ref models.Reference) ([]models.WaitlistEntry, error)

	// PromoteWaitlistEntry marks a waiting entry promoted and creates the
	// corresponding registration in one transaction, deliberately without a
	// capacity re-check. Returns ErrNotFound when the entry is missing or
	// not waiting.
	PromoteWaitlistEntry(ctx context.Context, orgID, id string) (*models.WaitlistEntry, *models.Registration, error)

	// CancelWaitlistEntry flips a waiting entry to cancelled. Returns
	// ErrNotFound when the entry is missing or not waiting.
	CancelWaitlistEntry(ctx context.Context, orgID, id string) error

	// BulkUpdateWaitlistPriority sets the priority on every waiting entry in
	// ids with one statement, returning the affected row count.
	BulkUpdateWaitlistPriority(ctx context.Context, orgID string, ids []string, priority models.WaitlistPriority) (int64, error)

	// BulkDeleteWaitlistEntries removes the entries in ids with one
	// statement, returning the affected row count.
	BulkDeleteWaitlistEntries(ctx context.Context, orgID string, ids []string) (int64, error)

	// ExpireWaitlistEntries flips waiting entries whose ExpiresAt has passed
	// to expired, across all organizations. Returns the affected row count.
	ExpireWaitlistEntries(ctx context.Context, now int64) (int64, error)

	// --- cash registers ---

	// OpenRegister creates an open register for the org's day. Returns
	// ErrAlreadyOpen when any register is currently open for the org.
	OpenRegister(ctx context.Context, register *models.CashRegister) error

	// GetOpenRegister returns (nil, nil) when the org has no open register.
	GetOpenRegister(ctx context.Context, orgID string) (*models.CashRegister, error)

	// GetRegister returns ErrNotFound for missing or cross-tenant IDs.
	GetRegister(ctx context.Context, orgID, id string) (*models.CashRegister, error)

	// CreateMovement inserts a movement; duplicate (Ref.Type, Ref.ID) pairs
	// return ErrDuplicateEntry without inserting.
	CreateMovement(ctx context.Context, movement *models.CashMovement) error

	// ListMovements returns a register's movements, oldest first.
	ListMovements(ctx context.Context, orgID, registerID string) ([]models.CashMovement, error)

	// ListMovementsByDate returns all movements attached to registers with
	// the given normalized date.
	ListMovementsByDate(ctx context.Context, orgID string, date int64) ([]models.CashMovement, error)

	// CloseRegister fixes the closing balance from the movement set and
	// marks the register closed, all in one transaction. Returns ErrNotFound
	// for missing/cross-tenant IDs and ErrAlreadyClosed for re-closes.
	CloseRegister(ctx context.Context, orgID, id, notes string) (*models.CashRegister, error)

	// --- payments and expenses ---

	// CreatePayment persists a payment, filling ID/CreatedAt.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// CreateExpense persists an expense, filling ID/CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListPayments returns the org's payments, newest first.
	ListPayments(ctx context.Context, orgID string) ([]models.Payment, error)

	// --- feature flags ---

	// GetFeatureFlag returns the stored value for (orgID, feature); found is
	// false when no row exists (which callers treat as enabled).
	GetFeatureFlag(ctx context.Context, orgID, feature string) (enabled bool, found bool, err error)

	// SetFeatureFlag upserts the stored value for (orgID, feature).
	SetFeatureFlag(ctx context.Context, orgID, feature string, enabled bool) error

	// Close releases any resources held by the store.
	Close() error
}
