package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-currency-rates/docs"
	"github.com/sbilibin2017/gw-currency-rates/internal/config"
	"github.com/sbilibin2017/gw-currency-rates/internal/facades"
	"github.com/sbilibin2017/gw-currency-rates/internal/handlers"
	"github.com/sbilibin2017/gw-currency-rates/internal/logger"
	"github.com/sbilibin2017/gw-currency-rates/internal/metrics"
	"github.com/sbilibin2017/gw-currency-rates/internal/middlewares"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
	"github.com/sbilibin2017/gw-currency-rates/internal/services"
	"github.com/sbilibin2017/gw-currency-rates/internal/views"
	"github.com/sbilibin2017/gw-currency-rates/internal/widget"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

var errRatesUnavailable = errors.New("rates unavailable")

// @title gw-currency-rates API
// @version 1.0.0
// @description Currency rates widget: RUB prices of USD, EUR and GBP
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// newRootCmd builds the CLI. Without a subcommand it serves HTTP.
func newRootCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rates widget over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(cmd.OutOrStdout())
			return serve(cmd.Context(), configPath)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch rates once and print the widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	}

	root := &cobra.Command{
		Use:          "gw-currency-rates",
		Short:        "Currency rates widget",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.env", "Path to configuration file")
	root.AddCommand(serveCmd, renderCmd)

	return root
}

// application holds the wired components shared by serve and render.
type application struct {
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	service  *services.RatesService
	renderer *views.Renderer
}

// setup loads the config, initializes the logger and wires the widget stack.
func setup(configPath string) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := logger.Initialize(cfg.App.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loc, err := cfg.Widget.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid widget timezone: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	facade, err := facades.NewRatesHTTPFacade(
		&http.Client{Timeout: cfg.Rates.Timeout},
		facades.RatesRequest{
			BaseURL:     cfg.Rates.BaseURL,
			AccessToken: cfg.Rates.AccessToken,
			Source:      cfg.Rates.Source,
			Targets:     cfg.Rates.Targets,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates client: %w", err)
	}
	logger.Log.Infow("rates provider configured", "endpoint", facade.Endpoint(), "timeout", cfg.Rates.Timeout)

	return &application{
		cfg:      cfg,
		registry: registry,
		metrics:  m,
		service:  services.NewRatesService(facade, m),
		renderer: views.NewRenderer(loc),
	}, nil
}

// router sets up routes and applies middleware.
func (a *application) router() http.Handler {
	widgetOpts := []widget.Option{widget.WithMetrics(a.metrics)}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware(a.metrics))

	r.Get("/", handlers.NewGetRatesWidgetHandler(a.service, a.renderer, widgetOpts...))
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", handlers.NewGetRatesHandler(a.service, a.renderer, widgetOpts...))
	})

	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, configPath string) error {
	app, err := setup(configPath)
	if err != nil {
		return err
	}
	log := logger.Log
	defer log.Sync()

	srv := &http.Server{
		Addr:         app.cfg.App.Addr(),
		Handler:      app.router(),
		ReadTimeout:  app.cfg.App.ReadTimeout,
		WriteTimeout: app.cfg.App.WriteTimeout,
		IdleTimeout:  app.cfg.App.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// render mounts one widget, waits for it to settle and prints the text view.
// The error state is reported as a failed command.
func render(ctx context.Context, configPath string, out io.Writer) error {
	app, err := setup(configPath)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	c := widget.New(app.service, widget.WithMetrics(app.metrics))
	defer c.Unmount()

	c.Mount(ctx)
	state, err := c.Wait(ctx)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, app.renderer.Text(state)); err != nil {
		return err
	}
	if state.Status() == models.WidgetError {
		return errRatesUnavailable
	}
	return nil
}
