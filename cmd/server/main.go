package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/goatos/goatos/internal/auth"
	"github.com/goatos/goatos/internal/middleware"
	"github.com/goatos/goatos/internal/service"
	"github.com/goatos/goatos/internal/storage/sqlite"
	"github.com/goatos/goatos/internal/workers"
	"github.com/goatos/goatos/pkg/api/apiconnect"
	"github.com/goatos/goatos/pkg/logging"
)

const defaultPort = "8080"

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()
	logging.Setup()
	logger := slog.Default()

	dbPath := getEnv("DB_PATH", "./data/goatos.db")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Interceptor chains: auth procedures are public, everything else
	// requires a valid token.
	common := []connect.Interceptor{
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(),
	}
	public := connect.WithInterceptors(common...)
	// Logging and metrics run outermost so rejected tokens still show up.
	authed := connect.WithInterceptors(append(append([]connect.Interceptor{}, common...), middleware.RequireAuth(jwtManager))...)

	mux := http.NewServeMux()

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(store, authenticator, jwtManager, logger), public)
	mux.Handle(authPath, authHandler)

	rosterPath, rosterHandler := apiconnect.NewRosterServiceHandler(
		service.NewRosterService(store, logger), authed)
	mux.Handle(rosterPath, rosterHandler)

	trainingPath, trainingHandler := apiconnect.NewTrainingServiceHandler(
		service.NewTrainingService(store, logger), authed)
	mux.Handle(trainingPath, trainingHandler)

	registrationPath, registrationHandler := apiconnect.NewRegistrationServiceHandler(
		service.NewRegistrationService(store, logger), authed)
	mux.Handle(registrationPath, registrationHandler)

	waitlistPath, waitlistHandler := apiconnect.NewWaitlistServiceHandler(
		service.NewWaitlistService(store, logger), authed)
	mux.Handle(waitlistPath, waitlistHandler)

	registerPath, registerHandler := apiconnect.NewCashRegisterServiceHandler(
		service.NewCashRegisterService(store, logger), authed)
	mux.Handle(registerPath, registerHandler)

	paymentPath, paymentHandler := apiconnect.NewPaymentServiceHandler(
		service.NewPaymentService(store, logger), authed)
	mux.Handle(paymentPath, paymentHandler)

	mux.Handle("/metrics", promhttp.Handler())

	sweeper, err := workers.NewExpirySweeper(store, getEnv("EXPIRY_SCHEDULE", "@every 1m"), logger)
	if err != nil {
		slog.Error("Failed to create expiry sweeper", "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	addr := fmt.Sprintf(":%s", getEnv("PORT", defaultPort))
	slog.Info("Connect server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
