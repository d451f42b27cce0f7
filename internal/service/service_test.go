package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/auth"
	"github.com/goatos/goatos/internal/middleware"
	"github.com/goatos/goatos/internal/models"
	"github.com/goatos/goatos/internal/storage/sqlite"
	"github.com/goatos/goatos/pkg/api"
	"github.com/goatos/goatos/pkg/api/apiconnect"
)

// testEnv wires the full stack against a temp database: real handlers, real
// JWT auth, real SQLite store.
type testEnv struct {
	store      *sqlite.SQLiteStore
	jwtManager *auth.JWTManager

	authClient         *apiconnect.AuthServiceClient
	rosterClient       *apiconnect.RosterServiceClient
	trainingClient     *apiconnect.TrainingServiceClient
	registrationClient *apiconnect.RegistrationServiceClient
	waitlistClient     *apiconnect.WaitlistServiceClient
	registerClient     *apiconnect.CashRegisterServiceClient
	paymentClient      *apiconnect.PaymentServiceClient
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.Default()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	authed := connect.WithInterceptors(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		NewAuthService(store, authenticator, jwtManager, logger))
	mux.Handle(authPath, authHandler)

	rosterPath, rosterHandler := apiconnect.NewRosterServiceHandler(NewRosterService(store, logger), authed)
	mux.Handle(rosterPath, rosterHandler)

	trainingPath, trainingHandler := apiconnect.NewTrainingServiceHandler(NewTrainingService(store, logger), authed)
	mux.Handle(trainingPath, trainingHandler)

	registrationPath, registrationHandler := apiconnect.NewRegistrationServiceHandler(NewRegistrationService(store, logger), authed)
	mux.Handle(registrationPath, registrationHandler)

	waitlistPath, waitlistHandler := apiconnect.NewWaitlistServiceHandler(NewWaitlistService(store, logger), authed)
	mux.Handle(waitlistPath, waitlistHandler)

	registerPath, registerHandler := apiconnect.NewCashRegisterServiceHandler(NewCashRegisterService(store, logger), authed)
	mux.Handle(registerPath, registerHandler)

	paymentPath, paymentHandler := apiconnect.NewPaymentServiceHandler(NewPaymentService(store, logger), authed)
	mux.Handle(paymentPath, paymentHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		store:              store,
		jwtManager:         jwtManager,
		authClient:         apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		rosterClient:       apiconnect.NewRosterServiceClient(http.DefaultClient, server.URL),
		trainingClient:     apiconnect.NewTrainingServiceClient(http.DefaultClient, server.URL),
		registrationClient: apiconnect.NewRegistrationServiceClient(http.DefaultClient, server.URL),
		waitlistClient:     apiconnect.NewWaitlistServiceClient(http.DefaultClient, server.URL),
		registerClient:     apiconnect.NewCashRegisterServiceClient(http.DefaultClient, server.URL),
		paymentClient:      apiconnect.NewPaymentServiceClient(http.DefaultClient, server.URL),
	}
}

// registerOrg signs up a fresh organization and returns its admin token and
// org ID.
func (env *testEnv) registerOrg(t *testing.T, orgName, email string) (token, orgID string) {
	t.Helper()
	resp, err := env.authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		OrganizationName: orgName,
		Email:            email,
		Name:             "Admin",
		Password:         "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Msg.Token, resp.Msg.User.OrgId
}

// staffToken mints a token for a staff-role user in the given org.
func (env *testEnv) staffToken(t *testing.T, orgID, email string) string {
	t.Helper()
	authenticator := auth.NewPasswordAuthenticator(env.store)
	user, err := authenticator.Register(context.Background(), orgID, email, "Staff", "correct-horse", models.RoleStaff)
	if err != nil {
		t.Fatalf("failed to create staff user: %v", err)
	}
	token, err := env.jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// authed builds a request carrying a bearer token.
func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("code = %v, want %v (err: %v)", got, code, err)
	}
}

func (env *testEnv) createAthlete(t *testing.T, token, name string) string {
	t.Helper()
	resp, err := env.rosterClient.CreateAthlete(context.Background(),
		authed(&api.CreateAthleteRequest{Name: name}, token))
	if err != nil {
		t.Fatalf("CreateAthlete failed: %v", err)
	}
	return resp.Msg.Athlete.Id
}

func (env *testEnv) createSession(t *testing.T, token string, maxCapacity *int64) string {
	t.Helper()
	resp, err := env.trainingClient.CreateSession(context.Background(),
		authed(&api.CreateSessionRequest{
			Title:       "Practice",
			StartsAt:    time.Now().Unix(),
			MaxCapacity: maxCapacity,
		}, token))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session.Id
}

func ptr(v int64) *int64 { return &v }

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, orgID := env.registerOrg(t, "Riverside Swim Club", "admin@riverside.test")
	if orgID == "" {
		t.Fatal("expected an org ID")
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	// Same email cannot sign up twice.
	_, err := env.authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		OrganizationName: "Another Club",
		Email:            "admin@riverside.test",
		Name:             "Admin",
		Password:         "correct-horse",
	}))
	wantCode(t, err, connect.CodeAlreadyExists)

	resp, err := env.authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "admin@riverside.test",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.Role != "admin" {
		t.Errorf("role = %q, want admin", resp.Msg.User.Role)
	}

	_, err = env.authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "admin@riverside.test",
		Password: "wrong",
	}))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestAuthRequired(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	// No token at all.
	_, err := env.rosterClient.ListAthletes(ctx, connect.NewRequest(&api.ListAthletesRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)

	// Garbage token.
	_, err = env.rosterClient.ListAthletes(ctx, authed(&api.ListAthletesRequest{}, "not-a-jwt"))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestRegistrationWaitlistFallback(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, _ := env.registerOrg(t, "Riverside Swim Club", "admin@fallback.test")
	sessionID := env.createSession(t, token, ptr(1))
	a1 := env.createAthlete(t, token, "Alice")
	a2 := env.createAthlete(t, token, "Bob")

	// First registration takes the only slot.
	resp, err := env.registrationClient.CreateRegistration(ctx, authed(&api.CreateRegistrationRequest{
		AthleteId:     a1,
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token))
	if err != nil {
		t.Fatalf("CreateRegistration failed: %v", err)
	}
	if resp.Msg.Waitlisted {
		t.Fatal("first registration should not be waitlisted")
	}

	// Second degrades into a waitlist entry: flag defaults to enabled.
	resp, err = env.registrationClient.CreateRegistration(ctx, authed(&api.CreateRegistrationRequest{
		AthleteId:     a2,
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token))
	if err != nil {
		t.Fatalf("CreateRegistration (full) failed: %v", err)
	}
	if !resp.Msg.Waitlisted {
		t.Fatal("expected a waitlisted response")
	}
	if resp.Msg.WaitlistEntry.Priority != "medium" {
		t.Errorf("priority = %q, want medium", resp.Msg.WaitlistEntry.Priority)
	}
	if resp.Msg.WaitlistEntry.Position != 1 {
		t.Errorf("position = %d, want 1", resp.Msg.WaitlistEntry.Position)
	}

	// Capacity view reflects the single active registration.
	capResp, err := env.trainingClient.GetCapacity(ctx, authed(&api.GetCapacityRequest{
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token))
	if err != nil {
		t.Fatalf("GetCapacity failed: %v", err)
	}
	if capResp.Msg.CurrentRegistrations != 1 || capResp.Msg.Remaining != 0 || capResp.Msg.HasCapacity {
		t.Errorf("capacity = %+v, want 1 registered, 0 remaining, full", capResp.Msg)
	}
}

func TestRegistrationWaitlistDisabled(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, orgID := env.registerOrg(t, "Riverside Swim Club", "admin@disabled.test")
	if err := env.store.SetFeatureFlag(ctx, orgID, "waitlist", false); err != nil {
		t.Fatalf("SetFeatureFlag failed: %v", err)
	}

	sessionID := env.createSession(t, token, ptr(0))
	a1 := env.createAthlete(t, token, "Alice")

	_, err := env.registrationClient.CreateRegistration(ctx, authed(&api.CreateRegistrationRequest{
		AthleteId:     a1,
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token))
	wantCode(t, err, connect.CodeResourceExhausted)
}

func TestWaitlistLifecycle(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, _ := env.registerOrg(t, "Riverside Swim Club", "admin@waitlist.test")
	sessionID := env.createSession(t, token, ptr(0))
	a1 := env.createAthlete(t, token, "Alice")
	a2 := env.createAthlete(t, token, "Bob")

	enqueue := func(athleteID, priority string) string {
		resp, err := env.waitlistClient.Enqueue(ctx, authed(&api.EnqueueWaitlistRequest{
			AthleteId:     athleteID,
			ReferenceType: "training_session",
			ReferenceId:   sessionID,
			Priority:      priority,
		}, token))
		if err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
		return resp.Msg.Entry.Id
	}

	lowID := enqueue(a1, "low")
	highID := enqueue(a2, "high")

	// Re-enqueueing a waiting athlete is rejected.
	_, err := env.waitlistClient.Enqueue(ctx, authed(&api.EnqueueWaitlistRequest{
		AthleteId:     a1,
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
		Priority:      "high",
	}, token))
	wantCode(t, err, connect.CodeAlreadyExists)

	// High outranks low despite enqueueing later.
	listResp, err := env.waitlistClient.List(ctx, authed(&api.ListWaitlistRequest{
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listResp.Msg.Entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(listResp.Msg.Entries))
	}
	if listResp.Msg.Entries[0].Id != highID {
		t.Errorf("first entry = %s, want the high-priority one", listResp.Msg.Entries[0].Id)
	}

	// Promote creates a registration and is not repeatable.
	promoteResp, err := env.waitlistClient.Promote(ctx, authed(&api.PromoteWaitlistRequest{EntryId: highID}, token))
	if err != nil {
		t.Fatalf("Promote failed: %v", err)
	}
	if promoteResp.Msg.Registration == nil || promoteResp.Msg.Registration.Status != "active" {
		t.Errorf("registration = %+v, want active", promoteResp.Msg.Registration)
	}
	_, err = env.waitlistClient.Promote(ctx, authed(&api.PromoteWaitlistRequest{EntryId: highID}, token))
	wantCode(t, err, connect.CodeNotFound)

	// Bulk priority update then bulk delete.
	bulkResp, err := env.waitlistClient.BulkUpdatePriority(ctx, authed(&api.BulkUpdatePriorityRequest{
		EntryIds: []string{lowID, highID},
		Priority: "high",
	}, token))
	if err != nil {
		t.Fatalf("BulkUpdatePriority failed: %v", err)
	}
	if bulkResp.Msg.UpdatedCount != 1 {
		t.Errorf("updated = %d, want 1 (promoted entries are terminal)", bulkResp.Msg.UpdatedCount)
	}

	deleteResp, err := env.waitlistClient.BulkDelete(ctx, authed(&api.BulkDeleteWaitlistRequest{
		EntryIds: []string{lowID},
	}, token))
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if deleteResp.Msg.DeletedCount != 1 {
		t.Errorf("deleted = %d, want 1", deleteResp.Msg.DeletedCount)
	}
}

func TestCashRegisterFlow(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, _ := env.registerOrg(t, "Riverside Swim Club", "admin@cash.test")
	athleteID := env.createAthlete(t, token, "Alice")

	openResp, err := env.registerClient.Open(ctx, authed(&api.OpenRegisterRequest{
		OpeningBalance: 10000,
	}, token))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	registerID := openResp.Msg.Register.Id

	// Only one open register at a time.
	_, err = env.registerClient.Open(ctx, authed(&api.OpenRegisterRequest{OpeningBalance: 0}, token))
	wantCode(t, err, connect.CodeFailedPrecondition)

	// Cash payment books an income movement.
	if _, err := env.paymentClient.RecordPayment(ctx, authed(&api.RecordPaymentRequest{
		AthleteId:   athleteID,
		Amount:      5000,
		Method:      "cash",
		Description: "March dues",
	}, token)); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	// Card payment does not touch the register.
	if _, err := env.paymentClient.RecordPayment(ctx, authed(&api.RecordPaymentRequest{
		AthleteId: athleteID,
		Amount:    9999,
		Method:    "card",
	}, token)); err != nil {
		t.Fatalf("RecordPayment (card) failed: %v", err)
	}

	// Cash expense books an expense movement.
	if _, err := env.paymentClient.RecordExpense(ctx, authed(&api.RecordExpenseRequest{
		Amount:      2000,
		Method:      "cash",
		Description: "Pool rental",
	}, token)); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	movementsResp, err := env.registerClient.ListMovements(ctx, authed(&api.ListMovementsRequest{
		RegisterId: registerID,
	}, token))
	if err != nil {
		t.Fatalf("ListMovements failed: %v", err)
	}
	if len(movementsResp.Msg.Movements) != 2 {
		t.Fatalf("len(movements) = %d, want 2 (card payments stay out)", len(movementsResp.Msg.Movements))
	}

	summaryResp, err := env.registerClient.GetDailySummary(ctx, authed(&api.GetDailySummaryRequest{}, token))
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if summaryResp.Msg.TotalIncome != 5000 || summaryResp.Msg.TotalExpense != 2000 || summaryResp.Msg.NetCashFlow != 3000 {
		t.Errorf("summary = %+v, want income 5000, expense 2000, net 3000", summaryResp.Msg)
	}

	// Close fixes opening + income - expense.
	closeResp, err := env.registerClient.Close(ctx, authed(&api.CloseRegisterRequest{
		RegisterId: registerID,
		Notes:      "end of day",
	}, token))
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closeResp.Msg.Register.ClosingBalance == nil || *closeResp.Msg.Register.ClosingBalance != 13000 {
		t.Errorf("closing = %v, want 13000", closeResp.Msg.Register.ClosingBalance)
	}

	_, err = env.registerClient.Close(ctx, authed(&api.CloseRegisterRequest{RegisterId: registerID}, token))
	wantCode(t, err, connect.CodeFailedPrecondition)

	// Cash after close: the payment still succeeds, the drawer just goes
	// untracked.
	if _, err := env.paymentClient.RecordPayment(ctx, authed(&api.RecordPaymentRequest{
		AthleteId: athleteID,
		Amount:    100,
		Method:    "cash",
	}, token)); err != nil {
		t.Fatalf("RecordPayment (no open register) failed: %v", err)
	}

	movementsResp, err = env.registerClient.ListMovements(ctx, authed(&api.ListMovementsRequest{
		RegisterId: registerID,
	}, token))
	if err != nil {
		t.Fatalf("ListMovements failed: %v", err)
	}
	if len(movementsResp.Msg.Movements) != 2 {
		t.Errorf("len(movements) = %d, want 2 (closed register gains nothing)", len(movementsResp.Msg.Movements))
	}
}

func TestGenerateSessionsWeekly(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token, _ := env.registerOrg(t, "Riverside Swim Club", "admin@generate.test")
	first := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC).Unix()

	resp, err := env.trainingClient.GenerateSessions(ctx, authed(&api.GenerateSessionsRequest{
		Title:         "Tuesday Sprint Work",
		FirstStartsAt: first,
		Count:         4,
		MaxCapacity:   ptr(12),
	}, token))
	if err != nil {
		t.Fatalf("GenerateSessions failed: %v", err)
	}
	if len(resp.Msg.Sessions) != 4 {
		t.Fatalf("len(sessions) = %d, want 4", len(resp.Msg.Sessions))
	}
	for i, sess := range resp.Msg.Sessions {
		want := first + int64(i)*7*24*3600
		if sess.StartsAt != want {
			t.Errorf("session %d starts at %d, want %d", i, sess.StartsAt, want)
		}
	}
}

func TestAdminOnlyProcedures(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	adminToken, orgID := env.registerOrg(t, "Riverside Swim Club", "admin@perm.test")
	staffToken := env.staffToken(t, orgID, "staff@perm.test")

	// Staff can manage the roster.
	if _, err := env.rosterClient.CreateAthlete(ctx, authed(&api.CreateAthleteRequest{Name: "Alice"}, staffToken)); err != nil {
		t.Fatalf("staff CreateAthlete failed: %v", err)
	}

	// Register management, training management, bulk waitlist ops and
	// expenses are admin only.
	_, err := env.registerClient.Open(ctx, authed(&api.OpenRegisterRequest{OpeningBalance: 0}, staffToken))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = env.trainingClient.CreateGroup(ctx, authed(&api.CreateGroupRequest{Name: "U14"}, staffToken))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = env.waitlistClient.BulkDelete(ctx, authed(&api.BulkDeleteWaitlistRequest{EntryIds: []string{"x"}}, staffToken))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = env.paymentClient.RecordExpense(ctx, authed(&api.RecordExpenseRequest{Amount: 100, Method: "cash"}, staffToken))
	wantCode(t, err, connect.CodePermissionDenied)

	// The admin passes the same gates.
	if _, err := env.trainingClient.CreateGroup(ctx, authed(&api.CreateGroupRequest{Name: "U14"}, adminToken)); err != nil {
		t.Fatalf("admin CreateGroup failed: %v", err)
	}
}

func TestCrossTenantLookupsConflateToNotFound(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	token1, _ := env.registerOrg(t, "Club One", "admin@one.test")
	token2, _ := env.registerOrg(t, "Club Two", "admin@two.test")

	sessionID := env.createSession(t, token1, ptr(10))

	// Another tenant's session ID behaves exactly like a missing ID.
	_, err := env.trainingClient.GetCapacity(ctx, authed(&api.GetCapacityRequest{
		ReferenceType: "training_session",
		ReferenceId:   sessionID,
	}, token2))
	wantCode(t, err, connect.CodeNotFound)

	_, err = env.trainingClient.GetCapacity(ctx, authed(&api.GetCapacityRequest{
		ReferenceType: "training_session",
		ReferenceId:   "does-not-exist",
	}, token2))
	wantCode(t, err, connect.CodeNotFound)
}
