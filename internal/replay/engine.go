package replay

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/model-sentry/internal/ledger"
	appLogger "github.com/yourusername/model-sentry/internal/logger"
	"github.com/yourusername/model-sentry/internal/metrics"
	"github.com/yourusername/model-sentry/internal/models"
	"github.com/yourusername/model-sentry/internal/repository"
	"github.com/yourusername/model-sentry/internal/strategy"
)

// Config holds the parameters of a single replay run
type Config struct {
	StartDate      time.Time
	EndDate        time.Time
	ModelIDs       []string
	MinEdge        float64
	MinConfidence  *float64
	MaxPicksPerDay int
}

// Validate checks the run parameters before any data is loaded
func (c *Config) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if len(c.ModelIDs) == 0 {
		return fmt.Errorf("at least one model ID is required")
	}
	if c.MaxPicksPerDay < 0 {
		return fmt.Errorf("max picks per day must not be negative")
	}
	return nil
}

// RunResult is the complete record of one replay run
type RunResult struct {
	Decisions []models.Decision    `json:"decisions"`
	Daily     []models.DailyResult `json:"daily"`
	Summary   models.RunSummary    `json:"summary"`
}

// Engine replays historical graded picks day by day, letting a strategy
// choose which model to trust each morning and settling that model's picks
// against the ledger each night.
type Engine struct {
	config       Config
	loader       *ledger.Loader
	logger       *logrus.Logger
	replayLogger *appLogger.ReplayLogger
}

// NewEngine creates a replay engine for the given run parameters
func NewEngine(cfg Config, loader *ledger.Loader, logger *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replay config: %w", err)
	}
	cfg.StartDate = ledger.Normalize(cfg.StartDate)
	cfg.EndDate = ledger.Normalize(cfg.EndDate)
	if cfg.MaxPicksPerDay == 0 {
		cfg.MaxPicksPerDay = DefaultMaxPicksPerDay
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		config:       cfg,
		loader:       loader,
		logger:       logger,
		replayLogger: appLogger.NewReplayLogger(logger),
	}, nil
}

// Run loads the pick ledger and replays it with a single strategy
func (e *Engine) Run(ctx context.Context, strat strategy.Strategy) (*RunResult, error) {
	led, err := e.loadLedger(ctx)
	if err != nil {
		return nil, err
	}
	return e.replay(ctx, led, strat)
}

func (e *Engine) loadLedger(ctx context.Context) (*ledger.Ledger, error) {
	led, err := e.loader.Load(ctx, repository.PickQuery{
		StartDate:     e.config.StartDate,
		EndDate:       e.config.EndDate,
		ModelIDs:      e.config.ModelIDs,
		MinEdge:       e.config.MinEdge,
		MinConfidence: e.config.MinConfidence,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordLedgerLoad()
	return led, nil
}

// replay walks the run window one day at a time. Each day the strategy sees
// rolling metrics built strictly from prior and same-day graded outcomes,
// then the selected model's picks for that day are settled.
func (e *Engine) replay(ctx context.Context, led *ledger.Ledger, strat strategy.Strategy) (*RunResult, error) {
	started := time.Now()
	strat.Reset()

	result := &RunResult{}
	cumulative := decimal.Zero
	previous := ""
	switches := 0
	blockedDays := 0
	usedModels := make(map[string]struct{})

	e.logger.WithFields(logrus.Fields{
		"strategy":   strat.Name(),
		"start_date": e.config.StartDate.Format("2006-01-02"),
		"end_date":   e.config.EndDate.Format("2006-01-02"),
		"models":     e.config.ModelIDs,
	}).Info("Starting replay run")

	for _, day := range led.DatesWithin(e.config.StartDate, e.config.EndDate) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		metricsByModel := make(map[string]*models.ModelMetrics, len(e.config.ModelIDs))
		for _, modelID := range e.config.ModelIDs {
			metricsByModel[modelID] = ComputeModelMetrics(led, day, modelID)
		}

		decision := strat.Decide(day, metricsByModel, previous)
		result.Decisions = append(result.Decisions, decision)
		metrics.RecordDecision(strat.Name(), string(decision.Action))
		e.replayLogger.LogDecision(strat.Name(), day, decision.SelectedModel,
			string(decision.Action), string(decision.State), decision.Reason)

		if decision.Action == models.ActionSwitched {
			switches++
			metrics.RecordSwitch(strat.Name())
		}

		daily := models.DailyResult{
			Date:    day,
			ModelID: decision.SelectedModel,
			State:   decision.State,
		}
		if decision.NoModel() {
			blockedDays++
			metrics.RecordBlockedDay(strat.Name())
		} else {
			usedModels[decision.SelectedModel] = struct{}{}
			outcome := SimulateDay(led.PicksFor(day, decision.SelectedModel), e.config.MaxPicksPerDay)
			daily.Picks = outcome.Picks
			daily.Wins = outcome.Wins
			daily.Losses = outcome.Losses
			daily.HitRate = outcome.HitRate
			daily.PnL = outcome.PnL
			cumulative = cumulative.Add(decimal.NewFromFloat(outcome.PnL))
		}
		daily.CumulativePnL = cumulative.Round(1).InexactFloat64()
		result.Daily = append(result.Daily, daily)

		previous = decision.SelectedModel
	}

	result.Summary = e.summarize(strat, result, cumulative, switches, blockedDays, usedModels)

	duration := time.Since(started).Seconds()
	metrics.RecordRunComplete(strat.Name(), duration, result.Summary.CumulativePnL, result.Summary.HitRate)
	e.replayLogger.LogRunSummary(strat.Name(), result.Summary.TotalPicks,
		result.Summary.HitRate, result.Summary.CumulativePnL, result.Summary.ROI,
		result.Summary.Switches, result.Summary.BlockedDays)

	return result, nil
}

func (e *Engine) summarize(strat strategy.Strategy, result *RunResult,
	cumulative decimal.Decimal, switches, blockedDays int, usedModels map[string]struct{}) models.RunSummary {

	summary := models.RunSummary{
		RunID:        uuid.New(),
		StrategyName: strat.Name(),
		StartDate:    e.config.StartDate,
		EndDate:      e.config.EndDate,
		Switches:     switches,
		BlockedDays:  blockedDays,
	}
	for _, daily := range result.Daily {
		summary.TotalPicks += daily.Picks
		summary.TotalWins += daily.Wins
		summary.TotalLosses += daily.Losses
	}
	summary.CumulativePnL = cumulative.Round(1).InexactFloat64()
	if summary.TotalPicks > 0 {
		summary.HitRate = roundPct(summary.TotalWins, summary.TotalPicks)
		staked := stakeAmount.Mul(decimal.NewFromInt(int64(summary.TotalPicks)))
		summary.ROI = cumulative.Div(staked).Mul(decimal.NewFromInt(100)).
			Round(1).InexactFloat64()
	}
	for model := range usedModels {
		summary.ModelsUsed = append(summary.ModelsUsed, model)
	}
	sort.Strings(summary.ModelsUsed)

	return summary
}
