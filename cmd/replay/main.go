// Package main provides the entry point for the replay CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/model-sentry/internal/config"
	"github.com/yourusername/model-sentry/internal/datasource"
	"github.com/yourusername/model-sentry/internal/ledger"
	"github.com/yourusername/model-sentry/internal/logger"
	"github.com/yourusername/model-sentry/internal/metrics"
	"github.com/yourusername/model-sentry/internal/replay"
	"github.com/yourusername/model-sentry/internal/scheduler"
	"github.com/yourusername/model-sentry/internal/strategy"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		strategyName = flag.String("strategy", "threshold", "Strategy to replay: threshold, best_of_n, conservative, oracle")
		startDate    = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate      = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		output       = flag.String("output", "", "Optional CSV output path for day-by-day results")
		schedule     = flag.String("schedule", "", "Optional cron expression for recurring replays of the trailing window")
		trailingDays = flag.Int("trailing-days", 30, "Trailing window size for scheduled replays")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	build, err := strategy.FactoryFromConfig(*strategyName, &cfg.Strategies)
	if err != nil {
		log.Fatalf("Unknown strategy: %v", err)
	}

	runCfg := buildRunConfig(cfg, *startDate, *endDate, log)
	loader := buildLoader(ctx, cfg, log)

	if *schedule != "" {
		runScheduled(cfg, loader, build, runCfg, *schedule, *trailingDays, log)
		return
	}

	strat, err := build()
	if err != nil {
		log.Fatalf("Failed to build strategy: %v", err)
	}

	engine, err := replay.NewEngine(runCfg, loader, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	result, err := engine.Run(ctx, strat)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	fmt.Print(replay.GenerateConsoleReport(result))

	if *output != "" {
		if err := replay.GenerateCSVExport(result, *output); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		log.WithField("path", *output).Info("Wrote day-by-day CSV")
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			stdlog.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			stdlog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildRunConfig(cfg *config.Config, startOverride, endOverride string, log *logrus.Logger) replay.Config {
	runCfg := replay.Config{
		ModelIDs:       cfg.Replay.ModelIDs,
		MinEdge:        cfg.Ledger.MinEdge,
		MinConfidence:  cfg.Ledger.MinConfidence,
		MaxPicksPerDay: cfg.Replay.MaxPicksPerDay,
	}

	var err error
	runCfg.StartDate, err = time.Parse("2006-01-02", cfg.Replay.StartDate)
	if err != nil {
		log.Fatalf("Invalid replay start date: %v", err)
	}
	runCfg.EndDate, err = time.Parse("2006-01-02", cfg.Replay.EndDate)
	if err != nil {
		log.Fatalf("Invalid replay end date: %v", err)
	}

	if startOverride != "" {
		runCfg.StartDate, err = time.Parse("2006-01-02", startOverride)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
	}
	if endOverride != "" {
		runCfg.EndDate, err = time.Parse("2006-01-02", endOverride)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}
	return runCfg
}

func buildLoader(ctx context.Context, cfg *config.Config, log *logrus.Logger) *ledger.Loader {
	repo, err := datasource.NewFactory(cfg, stdlog.Default()).Create(ctx)
	if err != nil {
		log.Fatalf("Failed to create ledger source: %v", err)
	}
	ttl := time.Duration(cfg.Ledger.CacheTTLSeconds) * time.Second
	return ledger.NewLoader(repo, ttl, log)
}

// runScheduled keeps the process alive, replaying the trailing window on the
// given cron cadence and serving Prometheus metrics if enabled.
func runScheduled(cfg *config.Config, loader *ledger.Loader, build strategy.Factory,
	runCfg replay.Config, cronExpr string, trailingDays int, log *logrus.Logger) {

	sched := scheduler.NewScheduler(loader, log)
	if err := sched.ScheduleRecurringReplay(cronExpr, build, runCfg, trailingDays); err != nil {
		log.Fatalf("Failed to schedule replay: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, log)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := sched.Stop(); err != nil {
		log.WithError(err).Error("Scheduler shutdown failed")
	}
}

func serveMetrics(cfg *config.Config, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	log.WithField("addr", addr).Info("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("Metrics server stopped")
	}
}
