// Package main provides the strategy comparison CLI tool.
package main

import (
	"context"
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/model-sentry/internal/config"
	"github.com/yourusername/model-sentry/internal/datasource"
	"github.com/yourusername/model-sentry/internal/ledger"
	appLogger "github.com/yourusername/model-sentry/internal/logger"
	"github.com/yourusername/model-sentry/internal/replay"
	"github.com/yourusername/model-sentry/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile    string
	strategyNames []string
	startDate     string
	endDate       string
	outputPath    string
	logger        *logrus.Logger
	cfg           *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringSliceVarP(&strategyNames, "strategies", "s", strategy.Names(), "Strategies to compare")
	rootCmd.Flags().StringVar(&startDate, "start-date", "", "Override start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "end-date", "", "Override end date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Optional CSV output path for the comparison summary")
}

var rootCmd = &cobra.Command{
	Use:   "compare",
	Short: "Replay several strategies over the same pick ledger",
	Long: `Replays each requested strategy over an identical historical window and
prints a side-by-side comparison of hit rate, P&L, switches, and blocked days.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger = appLogger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComparison(cmd.Context())
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		stdlog.Fatalf("Error: %v", err)
	}
}

func runComparison(ctx context.Context) error {
	factories := make([]strategy.Factory, 0, len(strategyNames))
	for _, name := range strategyNames {
		build, err := strategy.FactoryFromConfig(strings.TrimSpace(name), &cfg.Strategies)
		if err != nil {
			return err
		}
		factories = append(factories, build)
	}

	runCfg, err := resolveWindow()
	if err != nil {
		return err
	}

	repo, err := datasource.NewFactory(cfg, stdlog.Default()).Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to create ledger source: %w", err)
	}
	ttl := time.Duration(cfg.Ledger.CacheTTLSeconds) * time.Second
	loader := ledger.NewLoader(repo, ttl, logger)

	engine, err := replay.NewEngine(runCfg, loader, logger)
	if err != nil {
		return err
	}

	comparison, err := engine.Compare(ctx, factories)
	if err != nil {
		return err
	}

	fmt.Print(replay.GenerateComparisonReport(comparison))

	if outputPath != "" {
		if err := replay.GenerateComparisonCSV(comparison, outputPath); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		logger.WithField("path", outputPath).Info("Wrote comparison CSV")
	}
	return nil
}

func resolveWindow() (replay.Config, error) {
	runCfg := replay.Config{
		ModelIDs:       cfg.Replay.ModelIDs,
		MinEdge:        cfg.Ledger.MinEdge,
		MinConfidence:  cfg.Ledger.MinConfidence,
		MaxPicksPerDay: cfg.Replay.MaxPicksPerDay,
	}

	start, end := cfg.Replay.StartDate, cfg.Replay.EndDate
	if startDate != "" {
		start = startDate
	}
	if endDate != "" {
		end = endDate
	}

	var err error
	runCfg.StartDate, err = time.Parse("2006-01-02", start)
	if err != nil {
		return runCfg, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	runCfg.EndDate, err = time.Parse("2006-01-02", end)
	if err != nil {
		return runCfg, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return runCfg, nil
}
