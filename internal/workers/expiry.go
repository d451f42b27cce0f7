// Package workers hosts the background jobs the server runs alongside the
// RPC surface.
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ExpiryStore is the storage dependency of the expiry sweeper.
type ExpiryStore interface {
	// ExpireWaitlistEntries flips waiting entries whose deadline has passed
	// to expired, returning the affected row count.
	ExpireWaitlistEntries(ctx context.Context, now int64) (int64, error)
}

// ExpirySweeper periodically expires overdue waitlist entries across all
// organizations. Expiry is lazy by design: an overdue entry stays waiting
// until a sweep flips it, so the sweep interval bounds the staleness.
type ExpirySweeper struct {
	store  ExpiryStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewExpirySweeper creates a sweeper that runs on the given cron schedule,
// e.g. "@every 1m".
func NewExpirySweeper(store ExpiryStore, schedule string, logger *slog.Logger) (*ExpirySweeper, error) {
	s := &ExpirySweeper{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the schedule. It returns immediately; sweeps run on the
// cron's own goroutine.
func (s *ExpirySweeper) Start() {
	s.cron.Start()
	s.logger.Info("Waitlist expiry sweeper started")
}

// Stop halts the schedule and waits for any in-flight sweep to finish.
func (s *ExpirySweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Waitlist expiry sweeper stopped")
}

// Sweep runs one expiry pass immediately, outside the schedule.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int64, error) {
	return s.store.ExpireWaitlistEntries(ctx, time.Now().Unix())
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("Waitlist expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		s.logger.Info("Waitlist entries expired", "count", expired)
	}
}
