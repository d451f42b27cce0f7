package workers

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpiryStore struct {
	expired int64
	err     error
	lastNow int64
	calls   int
}

func (f *fakeExpiryStore) ExpireWaitlistEntries(ctx context.Context, now int64) (int64, error) {
	f.calls++
	f.lastNow = now
	return f.expired, f.err
}

func TestExpirySweeper(t *testing.T) {
	store := &fakeExpiryStore{expired: 3}
	sweeper, err := NewExpirySweeper(store, "@every 1h", slog.Default())
	require.NoError(t, err)

	expired, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
	assert.Equal(t, 1, store.calls)
	assert.Positive(t, store.lastNow)
}

func TestExpirySweeperBadSchedule(t *testing.T) {
	_, err := NewExpirySweeper(&fakeExpiryStore{}, "not a schedule", slog.Default())
	require.Error(t, err)
}

func TestExpirySweeperStoreError(t *testing.T) {
	store := &fakeExpiryStore{err: errors.New("db closed")}
	sweeper, err := NewExpirySweeper(store, "@every 1h", slog.Default())
	require.NoError(t, err)

	_, err = sweeper.Sweep(context.Background())
	require.Error(t, err)
}

func TestExpirySweeperStartStop(t *testing.T) {
	store := &fakeExpiryStore{}
	sweeper, err := NewExpirySweeper(store, "@every 1h", slog.Default())
	require.NoError(t, err)

	sweeper.Start()
	sweeper.Stop()
}
