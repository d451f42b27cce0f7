// Package flags implements per-organization feature flags.
//
// The absence of a row means Enabled. That default is deliberate: adding a
// new feature must not require a migration of every existing organization's
// flag rows. Disabling is always an explicit, stored decision.
package flags

import "context"

// State is the resolved value of a feature flag lookup.
type State int

const (
	Enabled State = iota
	Disabled
)

func (s State) String() string {
	if s == Disabled {
		return "disabled"
	}
	return "enabled"
}

// Known feature keys.
const (
	// FeatureWaitlist gates the waitlist fallback when a capacity holder
	// is full. Disabled means full holders reject registrations outright.
	FeatureWaitlist = "waitlist"
)

// Store is the storage dependency for flag lookups.
type Store interface {
	// GetFeatureFlag returns the stored enabled value for (orgID, feature).
	// found is false when no row exists.
	GetFeatureFlag(ctx context.Context, orgID, feature string) (enabled bool, found bool, err error)
}

// Lookup resolves a feature flag for an organization, applying the
// missing-row-means-enabled default.
func Lookup(ctx context.Context, store Store, orgID, feature string) (State, error) {
	enabled, found, err := store.GetFeatureFlag(ctx, orgID, feature)
	if err != nil {
		return Enabled, err
	}
	if !found || enabled {
		return Enabled, nil
	}
	return Disabled, nil
}
