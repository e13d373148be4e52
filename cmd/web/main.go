package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-report/internal/config"
	"seller-report/internal/middleware"
	"seller-report/internal/observability"
	"seller-report/internal/server"
	"seller-report/internal/services"
	"seller-report/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	dashboardTitle = "Seller performance"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := templates.Dashboard(dashboardTitle).Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func reportOptions(cfg config.ReportConfig) services.Options {
	opts := services.DefaultOptions()
	opts.TopProducts = cfg.TopProducts
	opts.Workers = cfg.Workers
	return opts
}

func newHandler(cfg *config.Config, report *services.SalesReport, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(report, logger, cfg.Report.MaxBodyBytes, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Tracing(logger),
		middleware.Logger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"report_workers", cfg.Report.Workers,
		"report_top_products", cfg.Report.TopProducts,
	)

	report := services.NewSalesReport(reportOptions(cfg.Report), logger)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, report, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down report service", "stats", report.Stats())
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gracefulServer.ListenAndServe(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
