package models

// TrainingGroup is a long-lived roster unit (e.g., "U14 Competitive") and a
// capacity holder: when MaxCapacity is nil the group is unbounded.
type TrainingGroup struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// OrgID is the organization this group belongs to.
	OrgID string

	// Name is the display name of the group.
	Name string

	// MaxCapacity caps active registrations; nil means unbounded.
	MaxCapacity *int64

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// TrainingSession is a single scheduled occurrence, optionally tied to a
// group. Sessions are capacity holders in their own right.
type TrainingSession struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// OrgID is the organization this session belongs to.
	OrgID string

	// GroupID optionally links the session to a TrainingGroup.
	GroupID string

	// Title is the display name (e.g., "Tuesday Sprint Work").
	Title string

	// StartsAt is the Unix timestamp of the session start.
	StartsAt int64

	// MaxCapacity caps active registrations; nil means unbounded.
	MaxCapacity *int64

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64
}

// RegistrationStatus tracks the lifecycle of a registration.
type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration is an athlete's slot in a capacity holder. Only active
// registrations count toward capacity.
type Registration struct {
	// ID is the unique identifier for the registration (UUID format).
	ID string

	// OrgID is the organization this registration belongs to.
	OrgID string

	// AthleteID is the registered athlete.
	AthleteID string

	// Ref is the capacity holder (training session or athlete group).
	Ref Reference

	// Status is active or cancelled.
	Status RegistrationStatus

	// CreatedAt is the Unix timestamp when the registration was created.
	CreatedAt int64
}
