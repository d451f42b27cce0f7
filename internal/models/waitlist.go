package models

// WaitlistPriority orders entries within a waitlist ahead of insertion order.
type WaitlistPriority string

const (
	PriorityHigh   WaitlistPriority = "high"
	PriorityMedium WaitlistPriority = "medium"
	PriorityLow    WaitlistPriority = "low"
)

// Rank maps a priority to its sort order (lower sorts first). Unknown values
// sort last so a bad row can never jump the queue.
func (p WaitlistPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priorities.
func (p WaitlistPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// WaitlistStatus tracks the lifecycle of a waitlist entry.
// waiting is the only non-terminal state: waiting -> promoted | cancelled |
// expired, and there is no way back to waiting.
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistPromoted  WaitlistStatus = "promoted"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistExpired   WaitlistStatus = "expired"
)

// Terminal reports whether no further transitions are allowed from s.
func (s WaitlistStatus) Terminal() bool {
	return s != WaitlistWaiting
}

// WaitlistEntry is queued interest in a full capacity holder. An athlete has
// at most one waiting entry per (Ref.Type, Ref.ID).
type WaitlistEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// OrgID is the organization this entry belongs to.
	OrgID string

	// AthleteID is the queued athlete.
	AthleteID string

	// Ref is the capacity holder the athlete is waiting for.
	Ref Reference

	// Priority splits the queue into bands; high drains before medium
	// before low.
	Priority WaitlistPriority

	// Status is waiting, promoted, cancelled or expired.
	Status WaitlistStatus

	// Position is the FIFO tie-break within a priority band. Assigned as
	// max(position)+1 per reference at enqueue time; priority is a separate
	// sort key and never reshuffles positions.
	Position int64

	// Reason optionally records why the athlete was waitlisted.
	Reason string

	// Notes is free-form staff annotation.
	Notes string

	// ExpiresAt, when non-zero, is the Unix timestamp after which the expiry
	// sweeper flips a still-waiting entry to expired.
	ExpiresAt int64

	// CreatedAt is the Unix timestamp when the entry was enqueued.
	CreatedAt int64
}
