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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"invctl/internal/config"
	"invctl/internal/infrastructure"
	customMiddleware "invctl/internal/middleware"
	"invctl/internal/services"
	handlers "invctl/internal/transport/http"
)

const (
	// Version is the application version, overridable at link time.
	Version = "1.0.0"
	AppName = "invctl"
)

// Application is the main application container. Dependencies are created
// once in NewApplication and wired through the router.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	AnalysisService *services.AnalysisService
	Metrics         *infrastructure.Metrics
	Logger          *slog.Logger
}

// NewApplication creates a new application instance with dependency
// injection.
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

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		Metrics:         infrastructure.NewMetrics(),
		AnalysisService: services.NewAnalysisService(logger),
	}

	app.setupRouter()
	app.createServer()
	return app, nil
}

// setupRouter builds the middleware chain and mounts the API routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.HTTPMetrics(a.Metrics.HTTPRequestsTotal, a.Metrics.HTTPDuration))
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.RateLimit(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst))

	r.Get("/healthz", handlers.HealthCheck)
	r.Handle("/metrics", a.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		analysisHandler := handlers.NewAnalysisHandler(a.AnalysisService, a.Config.Analysis, a.Logger, a.Metrics)
		r.Mount("/analysis", analysisHandler.Routes())
	})

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server. A listen failure cancels the supplied
// context so Run can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	// Give the shutdown its own deadline; ctx may already be cancelled.
	stopCtx, stopCancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout+5*time.Second)
	defer stopCancel()
	return a.Stop(stopCtx)
}
