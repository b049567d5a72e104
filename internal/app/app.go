package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"affrecon/internal/config"
	apierrors "affrecon/internal/errors"
	"affrecon/internal/infrastructure"
	custommw "affrecon/internal/middleware"
	"affrecon/internal/services"
	transport "affrecon/internal/transport/http"
)

// Version is the application version, overridable at build time.
var Version = "dev"

// Application holds the wired components of the reconciliation server.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	service      *services.ReconciliationService
	errorHandler *apierrors.ErrorHandler
	router       chi.Router
}

// NewApplication loads configuration, initializes logging and wires the
// service and HTTP surface together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &Application{
		Config:       cfg,
		Logger:       logger,
		service:      services.NewReconciliationService(cfg, logger),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// Service exposes the reconciliation service, mainly for tests.
func (a *Application) Service() *services.ReconciliationService {
	return a.service
}

// Router exposes the HTTP router, mainly for tests.
func (a *Application) Router() chi.Router {
	return a.router
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	reconcileHandler := transport.NewReconcileHandler(
		a.service, a.Logger, a.errorHandler, a.Config.Server.MaxUploadBytes)
	healthHandler := transport.NewHealthHandler(a.Logger, Version)

	r.Mount("/api", reconcileHandler.Routes())
	r.Mount("/healthz", healthHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start runs the HTTP server until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.InfoContext(ctx, "server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
		)
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		return a.Stop(context.Background())
	}
}

// Stop shuts the server down gracefully within the configured timeout.
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.InfoContext(shutdownCtx, "server stopping")

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	infrastructure.CloseLogFile()
	return nil
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Start(ctx)
}
