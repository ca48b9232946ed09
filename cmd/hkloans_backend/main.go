package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/core/services"
	"github.com/SscSPs/hk_loans_app/internal/handlers"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/SscSPs/hk_loans_app/internal/platform/config"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/SscSPs/hk_loans_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/hk_loans_app/internal/storage"
	"github.com/SscSPs/hk_loans_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	_ "time/tzdata"
)

const shutdownTimeout = 10 * time.Second

// @title HK Loans Backend API
// @version 1.0
// @description Loan management back office: clients, loans, installments and cash flow.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	readiness := map[string]handlers.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return dbPool.Ping(ctx) },
	}

	var idempotency middleware.IdempotencyStore
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseRedis(rdb)
		idempotency = middleware.NewRedisIdempotencyStore(rdb)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	store, err := storage.NewLocalDiskStore(cfg.DocumentDir, cfg.DocumentBaseURL)
	if err != nil {
		logger.Error("Failed to prepare document storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()
	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), store, m)

	r := setupRouter(logger, cfg, serviceContainer, handlers.Infrastructure{
		Metrics:         m,
		Idempotency:     idempotency,
		ReadinessChecks: readiness,
		DocumentRoot:    store.Root(),
	})

	serve(ctx, logger, cfg, r, dbPool)
}

func setupRouter(logger *slog.Logger, cfg *config.Config, svc *portssvc.ServiceContainer, infra handlers.Infrastructure) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, svc, infra); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return r
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, r *gin.Engine, dbPool *pgxpool.Pool) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			database.ClosePgxPool(dbPool)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Server stopped")
}

// runMigrations applies every pending "up" migration through a temporary database/sql connection.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
