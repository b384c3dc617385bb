package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumonhq/persons/internal/domain"
	httpapi "github.com/lumonhq/persons/internal/http"
	"github.com/lumonhq/persons/internal/metrics"
	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/internal/store"
	"github.com/lumonhq/persons/internal/store/drivers/sqlite"
	"github.com/lumonhq/persons/pkg/cryptox"
	"github.com/lumonhq/persons/pkg/jwtx"
	"github.com/lumonhq/persons/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires together every dependency of the persons service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	metrics *metrics.Metrics

	authService   *service.AuthService
	personService *service.PersonService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "persons-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := app.initTokens()
	if err != nil {
		return nil, err
	}

	app.metrics = metrics.New(prometheus.DefaultRegisterer)

	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     signer,
		Verifier:   verifier,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
		Metrics:    app.metrics,
	}
	app.personService = &service.PersonService{Store: app.db}

	if err := app.seedAccounts(context.Background()); err != nil {
		return nil, err
	}

	app.router = httpapi.NewRouter(verifier, BuildVersion, app.db, app.metrics, app.logger)
	app.router.AuthService = app.authService
	app.router.PersonService = app.personService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("persons service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down persons service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("persons service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := app.db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// initTokens builds the HS256 signer/verifier pair. Outside dev the secret
// must come from the environment; in dev a random ephemeral one is
// generated so the service works out of the box, at the cost of every
// restart invalidating outstanding tokens.
func (app *Application) initTokens() (jwtx.Signer, jwtx.Verifier, error) {
	secret := []byte(app.cfg.SigningSecret)
	if len(secret) == 0 {
		if app.cfg.Env != "dev" {
			return nil, nil, fmt.Errorf("AUTH_SIGNING_SECRET is required when ENV=%s", app.cfg.Env)
		}
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, nil, err
		}
		secret = []byte(hex.EncodeToString(buf))
		app.logger.Warn("AUTH_SIGNING_SECRET not set, using ephemeral secret; tokens will not survive restarts")
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, app.cfg.Issuer)
	if err != nil {
		return nil, nil, err
	}
	return signer, verifier, nil
}

// seedAccounts creates the initial admin account when the store is empty.
func (app *Application) seedAccounts(ctx context.Context) error {
	empty, err := app.db.Accounts().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(app.cfg.SeedPassword)
	if err != nil {
		return err
	}

	err = app.db.Accounts().Create(ctx, domain.Account{
		Username:     app.cfg.SeedUsername,
		PasswordHash: hash,
		Roles:        []string{"admin", "user"},
		Enabled:      true,
	})
	if err != nil {
		return err
	}

	app.logger.Info("seeded initial account", "username", app.cfg.SeedUsername)
	return nil
}
