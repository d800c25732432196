package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"volvedash/internal/charts"
	"volvedash/internal/config"
	apperrors "volvedash/internal/errors"
	"volvedash/internal/infrastructure"
	customMiddleware "volvedash/internal/middleware"
	"volvedash/internal/production"
	"volvedash/internal/services"
	handlers "volvedash/internal/transport/http"
	"volvedash/internal/views"
	"volvedash/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Production    *services.ProductionService
	Health        *services.HealthService
	ErrorHandler  *apperrors.ErrorHandler
	Views         *views.Renderer
}

// NewApplication loads configuration and logging, then builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.Path))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize views: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apperrors.NewErrorHandler(logger, cfg.Telemetry.Environment == "development"),
		Views:         renderer,
	}

	app.initializeServices()
	if err := app.setupRouter(); err != nil {
		return nil, err
	}
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	loader := production.NewWorkbookLoader(a.Config.Dataset.Path, a.Config.Dataset.Sheet, a.Logger)
	chartRenderer := charts.NewRenderer(a.Config.Dashboard.ChartWidth, a.Config.Dashboard.ChartHeight, a.Logger)

	a.Production = services.NewProductionService(
		loader,
		a.Config.Dataset.Path,
		chartRenderer,
		a.Metrics,
		a.OTelProviders.Tracer,
		a.Logger,
	)
	a.Health = services.NewHealthService(a.Production, a.Config.Dataset.ImagePath, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → the rest
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create OpenTelemetry middleware: %w", err)
	}

	// Prometheus scrapes skip the request middleware
	if a.OTelProviders.PrometheusHTTP != nil {
		r.With(customMiddleware.StructuredLogger(a.Logger)).Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(a.ErrorHandler.Recoverer)
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.ErrorHandler, a.Logger))
		r.Use(customMiddleware.Compress(5, "text/html", "text/csv", "application/json", "image/svg+xml"))

		a.setupRoutes(r)
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
	return nil
}

// setupRoutes registers the dashboard, chart and API routes
func (a *Application) setupRoutes(r chi.Router) {
	validator := customMiddleware.NewQueryValidator(a.Config.Dashboard.PageSize, a.Config.Dashboard.MaxPageSize, a.Logger)

	dashboardHandler := handlers.NewDashboardHandler(
		a.Production,
		a.Views,
		validator,
		a.ErrorHandler,
		a.Metrics,
		handlers.DashboardConfig{
			Title:   a.Config.Dashboard.Title,
			Version: contracts.GetVersionString(),
		},
		a.Logger,
	)
	dashboardHandler.RegisterRoutes(r)

	chartHandler := handlers.NewChartHandler(a.Production, a.Config.Dataset.ImagePath, a.ErrorHandler, a.Logger)
	r.Get(handlers.BannerPath, chartHandler.Banner)
	r.Get("/charts/{file}", chartHandler.GetChart)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		handlers.NewHealthHandler(a.Health, a.Logger).RegisterRoutes(r)

		r.Get("/charts", chartHandler.ListCharts)

		dataHandler := handlers.NewDataHandler(a.Production, validator, a.ErrorHandler, a.Logger)
		r.Mount("/data", dataHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving on the configured port. A listener error cancels ctx
// through cancel so Run can shut down.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, listener, cancel)
}

// Serve serves on an existing listener
func (a *Application) Serve(ctx context.Context, listener net.Listener, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("address", listener.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully shuts down the server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run starts the application and blocks until SIGINT or SIGTERM
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	// ctx is already done; shutdown gets its own deadline
	return a.Stop(context.Background())
}
