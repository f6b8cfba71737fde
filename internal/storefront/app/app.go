package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the storefront service and all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	metrics *metrics.Metrics

	sessionService *service.SessionService
	userService    *service.UserService
	productService *service.ProductService
	cartService    *service.CartService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg, opens and migrates the database, seeds the first admin
// when asked to, and wires the HTTP server.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
		metrics: metrics.New(),
	}

	if len(cfg.SessionSecret) < 32 {
		app.logger.Warn("SESSION_SECRET is shorter than 32 bytes")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler is the fully wired HTTP handler, as served by Run.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("storefront starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down storefront...")

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

	app.logger.Info("storefront stopped")
	return nil
}

// initDatabase initializes the database and applies migrations. The pragmas
// go in the DSN so every pooled connection gets them.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	secret := []byte(app.cfg.SessionSecret)

	signer, err := jwtx.NewHS256Signer(secret)
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}
	verifier, err := jwtx.NewHS256Verifier(secret, jwtx.VerifyOptions{Issuer: app.cfg.Issuer})
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}

	app.sessionService = &service.SessionService{
		Store:         app.db,
		Signer:        signer,
		Verifier:      verifier,
		Issuer:        app.cfg.Issuer,
		TTL:           app.cfg.SessionTTL,
		LookupTimeout: app.cfg.LookupTimeout,
	}
	app.userService = &service.UserService{Store: app.db}
	app.productService = &service.ProductService{Store: app.db}
	app.cartService = &service.CartService{Store: app.db}
	return nil
}

func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.SeedAdminEmail == "" {
		return nil
	}

	created, generated, err := app.userService.SeedAdmin(ctx, app.cfg.SeedAdminEmail, app.cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if !created {
		return nil
	}

	if generated != "" {
		// Printed once, outside the log pipeline.
		out := app.cfg.SecretOutput
		if out == nil {
			out = os.Stderr
		}
		if _, err := fmt.Fprintf(out, "generated admin password for %s: %s\n", app.cfg.SeedAdminEmail, generated); err != nil {
			return fmt.Errorf("failed to print generated admin password: %w", err)
		}
		app.logger.Warn("seeded admin with generated password", "email", app.cfg.SeedAdminEmail)
		return nil
	}
	app.logger.Info("seeded admin", "email", app.cfg.SeedAdminEmail)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.metrics, app.logger)

	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.ProductService = app.productService
	router.CartService = app.cartService
	router.Cookie = httpapi.CookieConfig{
		Name:   app.cfg.CookieName,
		Secure: app.cfg.CookieSecure,
	}
	router.CredentialLimit = limitOrDefault(app.cfg.StrictLimit, httpx.StrictLimit)
	router.ProbeLimit = limitOrDefault(app.cfg.LenientLimit, httpx.LenientLimit)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func limitOrDefault(cfg, def httpx.RateLimitConfig) httpx.RateLimitConfig {
	if cfg.RequestsPerWindow <= 0 || cfg.Window <= 0 || cfg.Burst <= 0 {
		return def
	}
	return cfg
}
