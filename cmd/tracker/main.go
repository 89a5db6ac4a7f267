// Package main provides the entry point for the long-running tracker: it
// serves Prometheus metrics and periodically re-ingests the settled-games
// table and regrades it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-tracker/internal/config"
	"github.com/yourusername/odds-tracker/internal/datasource"
	"github.com/yourusername/odds-tracker/internal/health"
	"github.com/yourusername/odds-tracker/internal/logger"
	"github.com/yourusername/odds-tracker/internal/metrics"
	"github.com/yourusername/odds-tracker/internal/scheduler"
	"github.com/yourusername/odds-tracker/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cronExpr   = flag.String("refresh-cron", "", "Override refresh cron expression")
		runOnStart = flag.Bool("run-on-start", true, "Run a grading pass immediately on startup")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Odds tracker starting")

	source, err := datasource.NewSource(&cfg.Data, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create data source")
	}

	svc := service.NewAccuracyService(source, cfg.Data.CacheTTL(), appLog)
	grouping := service.Grouping(cfg.Report.Grouping)

	refresh := func(ctx context.Context) error {
		svc.Invalidate()
		records, err := svc.LoadTable(ctx)
		if err != nil {
			return err
		}
		valid, rejected := svc.ValidRecords(records)
		if rejected > 0 {
			appLog.WithField("rejected", rejected).Warn("Skipped invalid records during refresh")
		}
		if len(valid) == 0 {
			appLog.Warn("No valid records in table, skipping pass")
			return nil
		}
		_, err = svc.RunPass(ctx, valid, grouping)
		return err
	}

	if cfg.Metrics.Enabled {
		startMetricsServer(cfg, appLog)
	}

	healthCtx, healthCancel := context.WithCancel(context.Background())
	defer healthCancel()

	var sourcePinger health.SourcePinger
	if p, ok := source.(health.SourcePinger); ok {
		sourcePinger = p
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		Source:      sourcePinger,
	})
	if err := healthServer.Start(healthCtx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	if *runOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := refresh(ctx); err != nil {
			appLog.WithError(err).Error("Initial grading pass failed")
		}
		cancel()
	}
	healthServer.SetReady(true)

	sched := scheduler.NewScheduler(appLog)
	expr := *cronExpr
	if expr == "" {
		expr = cfg.Schedule.RefreshCron
	}
	if cfg.Schedule.RefreshEnabled || *cronExpr != "" {
		if expr == "" {
			appLog.Fatal("Refresh enabled but no cron expression configured")
		}
		if err := sched.ScheduleRefresh(expr, refresh); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule refresh")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("next_run", sched.NextRun()).Info("Refresh scheduler running")
	}

	waitForShutdown(appLog)

	if sched.IsRunning() {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Failed to stop scheduler")
		}
	}
	appLog.Info("Odds tracker stopped")
}

func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) {
	metrics.InitRegistry()

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server failed")
		}
	}()
}

func waitForShutdown(appLog *logrus.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
}
