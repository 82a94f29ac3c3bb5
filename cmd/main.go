package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Calvinmuemah/ComradeKejani-sub001/internal/adapters/http/api"
	source "github.com/Calvinmuemah/ComradeKejani-sub001/internal/adapters/source"
	app "github.com/Calvinmuemah/ComradeKejani-sub001/internal/app"
	"github.com/Calvinmuemah/ComradeKejani-sub001/internal/config"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	engineMetricsInterval = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// the engine exposes its own registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Backend client and sync engine.
	client := source.NewHTTPClient(cfg.BackendURL,
		source.WithTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
	)

	engine := app.New(client,
		app.WithLogger(loggerInstance),
		app.WithPollInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond),
		app.WithMetricFanout(cfg.MetricFanout),
		app.WithHistoryRetention(time.Duration(cfg.HistoryRetentionHours)*time.Hour),
		app.WithHighlightDwell(time.Duration(cfg.HighlightDwellMS)*time.Millisecond),
		app.WithNoticeTTL(time.Duration(cfg.NoticeTTLMS)*time.Millisecond),
	)
	if err := engine.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start engine: " + err.Error() + "\n")
		return
	}
	defer engine.Stop()

	// Start engine metrics updater
	go startEngineMetricsUpdater(ctx, engine)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(engine).Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startEngineMetricsUpdater periodically mirrors engine state into gauges.
func startEngineMetricsUpdater(ctx context.Context, engine *app.Engine) {
	ticker := time.NewTicker(engineMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateEngineMetrics(engine)
		}
	}
}

// updateEngineMetrics updates gauges derived from engine statistics.
func updateEngineMetrics(engine *app.Engine) {
	stats := engine.GetStats()

	if tracked, ok := stats["trackedListings"].(int); ok {
		metrics.UpdateTrackedListings(tracked)
	}

	if size, ok := stats["historySize"].(int); ok {
		metrics.UpdateHistorySize(size)
	}
}
