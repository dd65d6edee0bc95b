package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/spicy-golf/scorekeeper/app/modules/scoring"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/eventbus"
	scoringmigrations "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories/migrations"
	"github.com/spicy-golf/scorekeeper/config"
)

// App owns the application's long-lived resources and its HTTP servers.
type App struct {
	Config   *config.Config
	Scoring  *scoring.Module
	db       *bun.DB
	logger   *slog.Logger
	registry *prometheus.Registry
	tracer   trace.Tracer
}

// NewApp wires configuration, storage, messaging, and the scoring module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.Observability.LogLevel)

	db, err := openDB(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.NewEventBus(cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	registry := prometheus.NewRegistry()

	tracer := noop.NewTracerProvider().Tracer("scorekeeper")

	scoringModule, err := scoring.NewModule(ctx, db, bus, logger, registry, tracer)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize scoring module: %w", err)
	}

	return &App{
		Config:   cfg,
		Scoring:  scoringModule,
		db:       db,
		logger:   logger,
		registry: registry,
		tracer:   tracer,
	}, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Mount("/api/v1", a.Scoring.Routes())

	srv := &http.Server{
		Addr:         a.Config.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("Starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var metricsSrv *http.Server
	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: addr, Handler: mux}
		go func() {
			a.logger.Info("Starting metrics server", "addr", addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("API server shutdown error", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Metrics server shutdown error", "error", err)
		}
	}
	return nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	if err := a.Scoring.Close(); err != nil {
		a.logger.Error("Error closing scoring module", "error", err)
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openDB(dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, scoringmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if !group.IsZero() {
		slog.Info("Applied migrations", "group", group.String())
	}
	return nil
}
