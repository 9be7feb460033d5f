package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkmoor/clubhouse/internal/portal/audit"
	"github.com/parkmoor/clubhouse/internal/portal/blob"
	httpapi "github.com/parkmoor/clubhouse/internal/portal/http"
	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/internal/portal/store/drivers/postgres"
	"github.com/parkmoor/clubhouse/internal/portal/store/drivers/sqlite"
	"github.com/parkmoor/clubhouse/pkg/cryptox"
	"github.com/parkmoor/clubhouse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portal with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions session.Store
	storage  blob.Storage
	sink     audit.Sink
	tokens   *session.TokenManager

	// Services
	signupService   *service.SignupService
	loginService    *service.LoginService
	sessionService  *service.SessionService
	artifactService *service.ArtifactService
	activityService *service.ActivityService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clubhouse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initSessions()
	if err := app.initStorage(); err != nil {
		return nil, err
	}
	app.initAudit()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("portal starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down portal...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal stopped")
	return nil
}

// initDatabase initializes the credential store and applies migrations.
func (app *Application) initDatabase() error {
	switch app.cfg.DBDriver {
	case "postgres":
		db, err := postgres.NewStore(app.cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
			app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

// initSessions picks the session backend: Redis when configured, an
// in-process map otherwise. The in-process store does not survive
// restarts and does not share sessions between replicas.
func (app *Application) initSessions() {
	if app.cfg.RedisAddr == "" {
		app.logger.Warn("REDIS_ADDR not set, using in-process session store")
		app.sessions = session.NewMemoryStore()
	} else {
		client := redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		app.sessions = session.NewRedisStore(client)
		app.logger.Info("session store connected", "addr", app.cfg.RedisAddr)
	}

	app.tokens = session.NewTokenManager(app.cfg.SessionSecret)
}

// initStorage picks the upload backend: S3 when a bucket is configured,
// an in-process map otherwise.
func (app *Application) initStorage() error {
	if app.cfg.S3Bucket == "" {
		app.logger.Warn("S3_BUCKET not set, uploads are held in memory only")
		app.storage = blob.NewMemoryStorage()
		return nil
	}

	storage, err := blob.NewS3Storage(context.Background(), blob.S3Config{
		Region:       app.cfg.S3Region,
		Bucket:       app.cfg.S3Bucket,
		BaseEndpoint: app.cfg.S3Endpoint,
		AccessKey:    app.cfg.S3Access,
		SecretKey:    app.cfg.S3Secret,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	app.storage = storage
	app.logger.Info("object storage connected", "bucket", app.cfg.S3Bucket)
	return nil
}

// initAudit selects where login events are written.
func (app *Application) initAudit() {
	switch app.cfg.AuditSink {
	case "bucket":
		app.sink = &audit.BucketSink{Storage: app.storage}
	default:
		app.sink = &audit.StoreSink{Store: app.db}
	}
	app.logger.Info("audit sink selected", "sink", app.cfg.AuditSink)
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.signupService = &service.SignupService{Store: app.db}
	app.loginService = &service.LoginService{
		Store:      app.db,
		Sessions:   app.sessions,
		Audit:      app.sink,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.sessionService = &service.SessionService{Sessions: app.sessions}
	app.artifactService = &service.ArtifactService{
		Storage:        app.storage,
		MaxUploadBytes: app.cfg.MaxUpload,
	}
	app.activityService = &service.ActivityService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	cookies := session.CookieOptions{
		Secure:   app.cfg.SecureCookies,
		SameSite: app.cfg.CookieSameSite(),
	}

	router := httpapi.NewRouter(
		app.tokens,
		cookies,
		BuildVersion,
		app.db,
		app.sessions,
		app.logger,
	)

	// Wire services to router
	router.SignupService = app.signupService
	router.LoginService = app.loginService
	router.SessionService = app.sessionService
	router.ArtifactService = app.artifactService
	router.ActivityService = app.activityService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
