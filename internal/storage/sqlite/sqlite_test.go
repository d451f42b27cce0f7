package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createOrg(t *testing.T, store *SQLiteStore, name string) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name}
	require.NoError(t, store.CreateOrganization(context.Background(), org))
	require.NotEmpty(t, org.ID)
	return org
}

func createAthlete(t *testing.T, store *SQLiteStore, orgID, name string) *models.Athlete {
	t.Helper()
	athlete := &models.Athlete{OrgID: orgID, Name: name}
	require.NoError(t, store.CreateAthlete(context.Background(), athlete))
	return athlete
}

func createSession(t *testing.T, store *SQLiteStore, orgID string, maxCapacity *int64) *models.TrainingSession {
	t.Helper()
	session := &models.TrainingSession{
		OrgID:       orgID,
		Title:       "Tuesday Sprint Work",
		StartsAt:    time.Now().Unix(),
		MaxCapacity: maxCapacity,
	}
	require.NoError(t, store.CreateTrainingSession(context.Background(), session))
	return session
}

func ptr(v int64) *int64 { return &v }

func sessionRef(id string) models.Reference {
	return models.Reference{Type: models.ReferenceTrainingSession, ID: id}
}

func TestRegistrationCapacity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	a1 := createAthlete(t, store, org.ID, "Alice")
	a2 := createAthlete(t, store, org.ID, "Bob")
	a3 := createAthlete(t, store, org.ID, "Carol")
	session := createSession(t, store, org.ID, ptr(2))
	ref := sessionRef(session.ID)

	register := func(athleteID string) error {
		return store.CreateRegistration(ctx, &models.Registration{
			OrgID: org.ID, AthleteID: athleteID, Ref: ref,
		})
	}

	require.NoError(t, register(a1.ID))
	require.NoError(t, register(a2.ID))

	// Third registration exceeds the cap of 2.
	err := register(a3.ID)
	require.ErrorIs(t, err, storage.ErrCapacityExceeded)

	// Same athlete cannot register twice while active.
	err = register(a1.ID)
	require.ErrorIs(t, err, storage.ErrDuplicateEntry)

	max, current, err := store.HolderCapacity(ctx, org.ID, ref)
	require.NoError(t, err)
	require.NotNil(t, max)
	assert.Equal(t, int64(2), *max)
	assert.Equal(t, int64(2), current)
}

func TestRegistrationCancelFreesSlot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	a1 := createAthlete(t, store, org.ID, "Alice")
	a2 := createAthlete(t, store, org.ID, "Bob")
	session := createSession(t, store, org.ID, ptr(1))
	ref := sessionRef(session.ID)

	reg := &models.Registration{OrgID: org.ID, AthleteID: a1.ID, Ref: ref}
	require.NoError(t, store.CreateRegistration(ctx, reg))

	err := store.CreateRegistration(ctx, &models.Registration{OrgID: org.ID, AthleteID: a2.ID, Ref: ref})
	require.ErrorIs(t, err, storage.ErrCapacityExceeded)

	require.NoError(t, store.CancelRegistration(ctx, org.ID, reg.ID))

	// Slot is free again.
	require.NoError(t, store.CreateRegistration(ctx, &models.Registration{OrgID: org.ID, AthleteID: a2.ID, Ref: ref}))

	// Cancelling a registration that is no longer active is a not-found.
	err = store.CancelRegistration(ctx, org.ID, reg.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnboundedHolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	session := createSession(t, store, org.ID, nil)
	ref := sessionRef(session.ID)

	for i := 0; i < 5; i++ {
		athlete := createAthlete(t, store, org.ID, "Athlete")
		require.NoError(t, store.CreateRegistration(ctx, &models.Registration{
			OrgID: org.ID, AthleteID: athlete.ID, Ref: ref,
		}))
	}

	max, current, err := store.HolderCapacity(ctx, org.ID, ref)
	require.NoError(t, err)
	assert.Nil(t, max)
	assert.Equal(t, int64(5), current)
}

func TestWaitlistOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	session := createSession(t, store, org.ID, ptr(0))
	ref := sessionRef(session.ID)

	enqueue := func(name string, priority models.WaitlistPriority) *models.WaitlistEntry {
		athlete := createAthlete(t, store, org.ID, name)
		entry := &models.WaitlistEntry{
			OrgID: org.ID, AthleteID: athlete.ID, Ref: ref, Priority: priority,
		}
		require.NoError(t, store.CreateWaitlistEntry(ctx, entry))
		return entry
	}

	low := enqueue("Lena", models.PriorityLow)
	high := enqueue("Hana", models.PriorityHigh)
	medium := enqueue("Mara", models.PriorityMedium)
	high2 := enqueue("Hugo", models.PriorityHigh)

	// Positions are FIFO per reference regardless of priority.
	assert.Equal(t, int64(1), low.Position)
	assert.Equal(t, int64(2), high.Position)
	assert.Equal(t, int64(3), medium.Position)
	assert.Equal(t, int64(4), high2.Position)

	// Listing drains high before medium before low, FIFO within a band.
	entries, err := store.ListWaitlist(ctx, org.ID, ref)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, high.ID, entries[0].ID)
	assert.Equal(t, high2.ID, entries[1].ID)
	assert.Equal(t, medium.ID, entries[2].ID)
	assert.Equal(t, low.ID, entries[3].ID)

	// Duplicate waiting entry for the same athlete and reference.
	err = store.CreateWaitlistEntry(ctx, &models.WaitlistEntry{
		OrgID: org.ID, AthleteID: low.AthleteID, Ref: ref, Priority: models.PriorityHigh,
	})
	require.ErrorIs(t, err, storage.ErrDuplicateEntry)
}

func TestWaitlistPromotion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	athlete := createAthlete(t, store, org.ID, "Alice")
	session := createSession(t, store, org.ID, ptr(0))
	ref := sessionRef(session.ID)

	entry := &models.WaitlistEntry{
		OrgID: org.ID, AthleteID: athlete.ID, Ref: ref, Priority: models.PriorityHigh,
	}
	require.NoError(t, store.CreateWaitlistEntry(ctx, entry))

	// Promotion flips the entry and creates an active registration even
	// though the holder has no capacity. Staff overrides the cap.
	promoted, reg, err := store.PromoteWaitlistEntry(ctx, org.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistPromoted, promoted.Status)
	require.NotNil(t, reg)
	assert.Equal(t, athlete.ID, reg.AthleteID)
	assert.Equal(t, models.RegistrationActive, reg.Status)

	_, current, err := store.HolderCapacity(ctx, org.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)

	// Promoted is terminal: promoting or cancelling again fails.
	_, _, err = store.PromoteWaitlistEntry(ctx, org.ID, entry.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	err = store.CancelWaitlistEntry(ctx, org.ID, entry.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWaitlistBulkOperations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	session := createSession(t, store, org.ID, ptr(0))
	ref := sessionRef(session.ID)

	var ids []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		athlete := createAthlete(t, store, org.ID, name)
		entry := &models.WaitlistEntry{
			OrgID: org.ID, AthleteID: athlete.ID, Ref: ref, Priority: models.PriorityLow,
		}
		require.NoError(t, store.CreateWaitlistEntry(ctx, entry))
		ids = append(ids, entry.ID)
	}

	// Cancelled entries are skipped by the bulk priority update.
	require.NoError(t, store.CancelWaitlistEntry(ctx, org.ID, ids[2]))

	updated, err := store.BulkUpdateWaitlistPriority(ctx, org.ID, ids, models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	entries, err := store.ListWaitlist(ctx, org.ID, ref)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, models.PriorityHigh, e.Priority)
	}

	deleted, err := store.BulkDeleteWaitlistEntries(ctx, org.ID, ids[:2])
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	entries, err = store.ListWaitlist(ctx, org.ID, ref)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWaitlistExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	session := createSession(t, store, org.ID, ptr(0))
	ref := sessionRef(session.ID)
	now := time.Now().Unix()

	overdue := createAthlete(t, store, org.ID, "Overdue")
	entryOverdue := &models.WaitlistEntry{
		OrgID: org.ID, AthleteID: overdue.ID, Ref: ref,
		Priority: models.PriorityMedium, ExpiresAt: now - 60,
	}
	require.NoError(t, store.CreateWaitlistEntry(ctx, entryOverdue))

	fresh := createAthlete(t, store, org.ID, "Fresh")
	entryFresh := &models.WaitlistEntry{
		OrgID: org.ID, AthleteID: fresh.ID, Ref: ref,
		Priority: models.PriorityMedium, ExpiresAt: now + 3600,
	}
	require.NoError(t, store.CreateWaitlistEntry(ctx, entryFresh))

	forever := createAthlete(t, store, org.ID, "Forever")
	entryForever := &models.WaitlistEntry{
		OrgID: org.ID, AthleteID: forever.ID, Ref: ref,
		Priority: models.PriorityMedium,
	}
	require.NoError(t, store.CreateWaitlistEntry(ctx, entryForever))

	expired, err := store.ExpireWaitlistEntries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := store.GetWaitlistEntry(ctx, org.ID, entryOverdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistExpired, got.Status)

	// Entries without a deadline never expire.
	got, err = store.GetWaitlistEntry(ctx, org.ID, entryForever.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistWaiting, got.Status)

	// Idempotent: a second sweep finds nothing.
	expired, err = store.ExpireWaitlistEntries(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestRegisterLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).Unix()

	register := &models.CashRegister{OrgID: org.ID, Date: date, OpeningBalance: 10000}
	require.NoError(t, store.OpenRegister(ctx, register))

	// Only one open register per organization.
	err := store.OpenRegister(ctx, &models.CashRegister{OrgID: org.ID, Date: date, OpeningBalance: 0})
	require.ErrorIs(t, err, storage.ErrAlreadyOpen)

	open, err := store.GetOpenRegister(ctx, org.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, register.ID, open.ID)

	movement := &models.CashMovement{
		RegisterID: register.ID, OrgID: org.ID,
		Type: models.MovementIncome, Amount: 5000,
		Ref: models.Reference{Type: models.ReferencePayment, ID: "pay-1"},
	}
	require.NoError(t, store.CreateMovement(ctx, movement))

	// Retrying the same payment never double-books.
	err = store.CreateMovement(ctx, &models.CashMovement{
		RegisterID: register.ID, OrgID: org.ID,
		Type: models.MovementIncome, Amount: 5000,
		Ref: models.Reference{Type: models.ReferencePayment, ID: "pay-1"},
	})
	require.ErrorIs(t, err, storage.ErrDuplicateEntry)

	require.NoError(t, store.CreateMovement(ctx, &models.CashMovement{
		RegisterID: register.ID, OrgID: org.ID,
		Type: models.MovementExpense, Amount: 2000,
		Ref: models.Reference{Type: models.ReferenceExpense, ID: "exp-1"},
	}))

	movements, err := store.ListMovements(ctx, org.ID, register.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2)

	byDate, err := store.ListMovementsByDate(ctx, org.ID, date)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	// Closing fixes opening + income - expense.
	closed, err := store.CloseRegister(ctx, org.ID, register.ID, "end of day")
	require.NoError(t, err)
	require.NotNil(t, closed.ClosingBalance)
	assert.Equal(t, int64(13000), *closed.ClosingBalance)
	assert.Equal(t, models.RegisterClosed, closed.Status)
	assert.Equal(t, "end of day", closed.Notes)

	// Closing is one-way.
	_, err = store.CloseRegister(ctx, org.ID, register.ID, "")
	require.ErrorIs(t, err, storage.ErrAlreadyClosed)

	open, err = store.GetOpenRegister(ctx, org.ID)
	require.NoError(t, err)
	assert.Nil(t, open)

	// A new day can open again.
	require.NoError(t, store.OpenRegister(ctx, &models.CashRegister{
		OrgID: org.ID, Date: date + 86400, OpeningBalance: 13000,
	}))
}

func TestCrossTenantIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org1 := createOrg(t, store, "Club One")
	org2 := createOrg(t, store, "Club Two")

	session := createSession(t, store, org1.ID, ptr(10))
	athlete := createAthlete(t, store, org1.ID, "Alice")
	register := &models.CashRegister{OrgID: org1.ID, Date: time.Now().Unix(), OpeningBalance: 0}
	require.NoError(t, store.OpenRegister(ctx, register))

	// Another tenant's IDs look exactly like missing IDs.
	_, err := store.GetTrainingSession(ctx, org2.ID, session.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetAthlete(ctx, org2.ID, athlete.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetRegister(ctx, org2.ID, register.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = store.HolderCapacity(ctx, org2.ID, sessionRef(session.ID))
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = store.CancelRegistration(ctx, org2.ID, "whatever")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFeatureFlags(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")

	_, found, err := store.GetFeatureFlag(ctx, org.ID, "waitlist")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetFeatureFlag(ctx, org.ID, "waitlist", false))
	enabled, found, err := store.GetFeatureFlag(ctx, org.ID, "waitlist")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, enabled)

	// Upsert flips in place.
	require.NoError(t, store.SetFeatureFlag(ctx, org.ID, "waitlist", true))
	enabled, found, err = store.GetFeatureFlag(ctx, org.ID, "waitlist")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, enabled)
}

func TestListTrainingSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	org := createOrg(t, store, "Riverside Swim Club")
	group := &models.TrainingGroup{OrgID: org.ID, Name: "U14 Competitive", MaxCapacity: ptr(20)}
	require.NoError(t, store.CreateTrainingGroup(ctx, group))

	base := time.Now().Unix()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateTrainingSession(ctx, &models.TrainingSession{
			OrgID: org.ID, GroupID: group.ID, Title: "Practice", StartsAt: base + int64(i*3600),
		}))
	}
	require.NoError(t, store.CreateTrainingSession(ctx, &models.TrainingSession{
		OrgID: org.ID, Title: "Open Swim", StartsAt: base,
	}))

	all, err := store.ListTrainingSessions(ctx, org.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	grouped, err := store.ListTrainingSessions(ctx, org.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, grouped, 3)
	for i := 1; i < len(grouped); i++ {
		assert.LessOrEqual(t, grouped[i-1].StartsAt, grouped[i].StartsAt)
	}
}
