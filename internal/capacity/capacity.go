// Package capacity implements the free-slot predicate for capacity holders.
package capacity

// Holder is the minimal view of a capacity holder needed for the check:
// the configured ceiling and the live count of active registrations.
type Holder struct {
	// MaxCapacity is the ceiling; nil means unbounded.
	MaxCapacity *int64

	// CurrentRegistrations is the live count of active registrations,
	// re-queried on every check (never a stored denormalization).
	CurrentRegistrations int64
}

// HasCapacity reports whether the holder can accept one more registration.
// An unbounded holder (nil max) always has capacity. The predicate has no
// side effects; callers that act on the answer must do so in the same
// database transaction that produced CurrentRegistrations, otherwise two
// concurrent registrations can both take the last slot.
func HasCapacity(h Holder) bool {
	if h.MaxCapacity == nil {
		return true
	}
	return h.CurrentRegistrations < *h.MaxCapacity
}

// Remaining returns how many slots are left, or -1 for unbounded holders.
// A holder already over capacity reports 0, not a negative count.
func Remaining(h Holder) int64 {
	if h.MaxCapacity == nil {
		return -1
	}
	left := *h.MaxCapacity - h.CurrentRegistrations
	if left < 0 {
		return 0
	}
	return left
}
