package flags

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	enabled bool
	found   bool
	err     error
}

func (f *fakeStore) GetFeatureFlag(ctx context.Context, orgID, feature string) (bool, bool, error) {
	return f.enabled, f.found, f.err
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row means enabled", func(t *testing.T) {
		state, err := Lookup(ctx, &fakeStore{found: false}, "org-1", FeatureWaitlist)
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if state != Enabled {
			t.Errorf("state = %v, want Enabled", state)
		}
	})

	t.Run("stored enabled", func(t *testing.T) {
		state, err := Lookup(ctx, &fakeStore{found: true, enabled: true}, "org-1", FeatureWaitlist)
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if state != Enabled {
			t.Errorf("state = %v, want Enabled", state)
		}
	})

	t.Run("stored disabled", func(t *testing.T) {
		state, err := Lookup(ctx, &fakeStore{found: true, enabled: false}, "org-1", FeatureWaitlist)
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if state != Disabled {
			t.Errorf("state = %v, want Disabled", state)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		wantErr := errors.New("db closed")
		if _, err := Lookup(ctx, &fakeStore{err: wantErr}, "org-1", FeatureWaitlist); !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	})
}
