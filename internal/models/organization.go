package models

// Organization is the tenant boundary. Every other entity is scoped to
// exactly one organization, and every storage query filters by OrgID.
type Organization struct {
	// ID is the unique identifier for the organization (UUID format).
	ID string

	// Name is the display name (e.g., "Riverside Swim Club").
	Name string

	// CreatedAt is the Unix timestamp when the organization was created.
	CreatedAt int64
}

// Role describes what a staff user may do within their organization.
type Role string

const (
	// RoleAdmin may manage registers, bulk waitlist operations, training
	// groups/sessions, and expenses in addition to everything staff can do.
	RoleAdmin Role = "admin"
	// RoleStaff may manage rosters, registrations, waitlist entries and
	// record payments.
	RoleStaff Role = "staff"
)

// User represents a staff account. Unlike athletes, users can log in.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// OrgID is the organization this user belongs to.
	OrgID string

	// Email is the login identifier (unique across all organizations).
	Email string

	// Name is the display name of the user.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Role is either RoleAdmin or RoleStaff.
	Role Role

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// Athlete is a roster entry. Athletes do not log in; they are the subject of
// registrations, waitlist entries and payments.
type Athlete struct {
	// ID is the unique identifier for the athlete (UUID format).
	ID string

	// OrgID is the organization this athlete belongs to.
	OrgID string

	// Name is the athlete's full name.
	Name string

	// Email is optional contact information.
	Email string

	// CreatedAt is the Unix timestamp when the athlete was added.
	CreatedAt int64
}
