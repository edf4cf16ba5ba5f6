package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"shelterpulse/internal/config"
	"shelterpulse/internal/errors"
	"shelterpulse/internal/infrastructure"
	"shelterpulse/internal/middleware"
	"shelterpulse/internal/services"
	"shelterpulse/internal/store/sqlite"
	handlers "shelterpulse/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "ShelterPulse"
)

// Application is the assembled application container.
type Application struct {
	Config *config.Config
	Paths  *config.Paths
	Router *chi.Mux
	Server *http.Server
	Store  *sqlite.Store
	Logger *slog.Logger

	DataService    *services.DataService
	AuthService    *services.AuthService
	ActionsService *services.ActionsService
	HealthService  *services.HealthService
}

// NewApplication loads configuration, wires every service and builds the
// router and server. The dataset is loaded during startup, not here, so a
// broken source file keeps the process serving a degraded health status.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config: cfg,
		Paths:  paths,
		Logger: logger,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the store and the services in dependency order.
func (a *Application) initializeServices() error {
	store, err := sqlite.NewStore(a.Paths.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.Store = store

	a.DataService = services.NewDataService(a.Config, a.Paths, a.Logger)
	a.AuthService = services.NewAuthService(
		store,
		a.Config.Security.BcryptCost,
		a.Config.Security.SessionTTL,
		a.Logger,
	)
	a.ActionsService = services.NewActionsService(store, a.Logger)
	a.HealthService = services.NewHealthService(
		Version, "",
		a.DataService, a.AuthService, a.ActionsService,
		a.Logger,
	)

	return nil
}

// setupRouter builds the chi router and mounts every handler.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())

		authHandler := handlers.NewAuthHandler(a.AuthService, a.Logger, errorHandler)
		r.Mount("/auth", authHandler.Routes())

		dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
		r.Mount("/data", dataHandler.Routes())

		// Action log requires a session.
		actionsHandler := handlers.NewActionsHandler(a.ActionsService, a.Logger, errorHandler)
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(a.Logger, a.AuthService))
			r.Mount("/actions", actionsHandler.Routes())
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// createServer builds the HTTP server from configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.ListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start loads the dataset and starts the HTTP server. It blocks until the
// context is cancelled or the server fails.
func (a *Application) Start(ctx context.Context) error {
	if err := a.DataService.Load(ctx); err != nil {
		// Degraded start: the reload endpoint can recover once the
		// source file is fixed.
		a.Logger.ErrorContext(ctx, "initial dataset load failed",
			slog.String("error", err.Error()))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown drains the server and closes resources.
func (a *Application) shutdown() error {
	a.Logger.Info("shutting down",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	if err := a.Store.Close(); err != nil {
		a.Logger.Error("store close failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Error("log file close failed", slog.String("error", err.Error()))
	}
	return nil
}

// Run starts the application and blocks until an interrupt arrives.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err := a.Start(ctx)
	a.Logger.Info("application stopped",
		slog.Duration("uptime", time.Since(start)))
	return err
}
