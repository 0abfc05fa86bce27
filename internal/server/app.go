// Package server initializes and runs the API server: configuration,
// logging, database connection and migrations, services, and the HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	"github.com/smartware/smartware-api/internal/logging"
	"github.com/smartware/smartware-api/internal/server/auth"
	"github.com/smartware/smartware-api/internal/server/config"
	"github.com/smartware/smartware-api/internal/server/httpapi"
	"github.com/smartware/smartware-api/internal/server/repositories/repomanager"
	"github.com/smartware/smartware-api/internal/server/services"
)

const dbConnectAttempts = 5

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewDefault()

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecretKey), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenValidity)

	handlers := httpapi.NewHandlers(logger,
		services.NewAuthService(db, rm, issuer, cfg.RefreshTokenValidity),
		services.NewPostService(db, rm),
		services.NewTagService(db, rm),
		services.NewAuthorService(db, rm),
	)
	router := httpapi.NewRouter(handlers, issuer, cfg.CORSAllowedOrigin)
	server := httpapi.NewServer(cfg.EndpointAddr, router, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

// openDB connects and pings with fibonacci backoff, so the server survives
// the database coming up a few seconds later in compose environments.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(dbConnectAttempts, retry.NewFibonacci(time.Second))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or an OS signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "app stopped")
}
