package replay

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/model-sentry/internal/ledger"
	"github.com/yourusername/model-sentry/internal/models"
	"github.com/yourusername/model-sentry/internal/strategy"
)

func healthyThreshold(t *testing.T) strategy.Strategy {
	t.Helper()
	strat, err := strategy.NewThresholdStrategy(strategy.ThresholdParams{
		ChampionID:      "alpha",
		ChallengerIDs:   []string{"beta"},
		WatchPct:        40,
		AlertPct:        35,
		BlockPct:        30,
		MinSample:       1,
		ChallengerMinHR: 45,
	})
	require.NoError(t, err)
	return strat
}

// steadyRepo yields two picks per day for each model, one win and one loss,
// across the run window plus lookback history.
func steadyRepo(start, end time.Time, modelIDs ...string) *stubPickRepo {
	repo := &stubPickRepo{}
	for d := start.AddDate(0, 0, -ledger.LookbackDays); !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, model := range modelIDs {
			repo.picks = append(repo.picks,
				gradedPick(d, model, 5, true),
				gradedPick(d, model, 4, false),
			)
		}
	}
	return repo
}

func TestConfigValidate(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 12)

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid",
			config: Config{StartDate: start, EndDate: end, ModelIDs: []string{"alpha"}},
		},
		{
			name:    "missing dates",
			config:  Config{ModelIDs: []string{"alpha"}},
			wantErr: "dates are required",
		},
		{
			name:    "end before start",
			config:  Config{StartDate: end, EndDate: start, ModelIDs: []string{"alpha"}},
			wantErr: "before start date",
		},
		{
			name:    "no models",
			config:  Config{StartDate: start, EndDate: end},
			wantErr: "at least one model",
		},
		{
			name:    "negative max picks",
			config:  Config{StartDate: start, EndDate: end, ModelIDs: []string{"alpha"}, MaxPicksPerDay: -1},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEngineRunHealthyChampion(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 12)
	repo := steadyRepo(start, end, "alpha", "beta")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha", "beta"},
	}, loader, nil)
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), healthyThreshold(t))
	require.NoError(t, err)

	require.Len(t, result.Daily, 3)
	for _, day := range result.Daily {
		assert.Equal(t, "alpha", day.ModelID)
		assert.Equal(t, models.StateHealthy, day.State)
		assert.Equal(t, day.Picks, day.Wins+day.Losses)
		assert.Equal(t, 2, day.Picks)
		assert.Equal(t, float64(-10), day.PnL)
	}

	s := result.Summary
	assert.Equal(t, "threshold", s.StrategyName)
	assert.Equal(t, 6, s.TotalPicks)
	assert.Equal(t, 3, s.TotalWins)
	assert.Equal(t, 3, s.TotalLosses)
	assert.Equal(t, 50.0, s.HitRate)
	assert.Equal(t, -30.0, s.CumulativePnL)
	assert.Equal(t, -4.5, s.ROI)
	assert.Equal(t, 0, s.Switches)
	assert.Equal(t, 0, s.BlockedDays)
	assert.Equal(t, []string{"alpha"}, s.ModelsUsed)
	assert.NotEmpty(t, s.RunID)
}

func TestEngineRunCountsBlockedDays(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 11)

	// Champion loses every pick and there are no challengers to rescue it
	repo := &stubPickRepo{}
	for d := start.AddDate(0, 0, -10); !d.After(end); d = d.AddDate(0, 0, 1) {
		repo.picks = append(repo.picks, gradedPick(d, "alpha", 5, false))
	}
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha"},
	}, loader, nil)
	require.NoError(t, err)

	strat, err := strategy.NewThresholdStrategy(strategy.ThresholdParams{
		ChampionID: "alpha",
		WatchPct:   40,
		AlertPct:   35,
		BlockPct:   30,
		MinSample:  1,
	})
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), strat)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.BlockedDays)
	assert.Equal(t, 0, result.Summary.TotalPicks, "blocked days must place no bets")
	assert.Equal(t, 0.0, result.Summary.CumulativePnL)
	assert.Empty(t, result.Summary.ModelsUsed)
	for _, day := range result.Daily {
		assert.Empty(t, day.ModelID)
		assert.Equal(t, models.StateBlocked, day.State)
	}
}

func TestEngineRunIsDeterministic(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 14)
	repo := steadyRepo(start, end, "alpha", "beta")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha", "beta"},
	}, loader, nil)
	require.NoError(t, err)

	first, err := engine.Run(context.Background(), healthyThreshold(t))
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), healthyThreshold(t))
	require.NoError(t, err)

	assert.Equal(t, first.Decisions, second.Decisions)
	assert.Equal(t, first.Daily, second.Daily)

	// Summaries match except for the per-run identifier
	firstSummary, secondSummary := first.Summary, second.Summary
	firstSummary.RunID, secondSummary.RunID = uuid.Nil, uuid.Nil
	assert.Equal(t, firstSummary, secondSummary)
}

func TestEngineRunCancelledContext(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 12)
	repo := steadyRepo(start, end, "alpha")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha"},
	}, loader, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Run(ctx, healthyThreshold(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareLoadsLedgerOnce(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 12)
	repo := steadyRepo(start, end, "alpha", "beta")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha", "beta"},
	}, loader, nil)
	require.NoError(t, err)

	factories := []strategy.Factory{
		func() (strategy.Strategy, error) {
			return strategy.NewThresholdStrategy(strategy.ThresholdParams{
				ChampionID:    "alpha",
				ChallengerIDs: []string{"beta"},
				WatchPct:      40,
				AlertPct:      35,
				BlockPct:      30,
				MinSample:     1,
			})
		},
		func() (strategy.Strategy, error) {
			return strategy.NewBestOfNStrategy(1)
		},
	}

	comparison, err := engine.Compare(context.Background(), factories)
	require.NoError(t, err)

	require.Len(t, comparison.Results, 2)
	assert.Equal(t, 1, repo.calls, "comparison must replay one shared ledger")
	assert.Equal(t, "threshold", comparison.Results[0].Summary.StrategyName)
	assert.Equal(t, "best_of_n", comparison.Results[1].Summary.StrategyName)
}

func TestCompareIsolatesStrategyState(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 14)
	repo := steadyRepo(start, end, "alpha", "beta")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha", "beta"},
	}, loader, nil)
	require.NoError(t, err)

	build := func() (strategy.Strategy, error) {
		return strategy.NewThresholdStrategy(strategy.ThresholdParams{
			ChampionID:    "alpha",
			ChallengerIDs: []string{"beta"},
			WatchPct:      40,
			AlertPct:      35,
			BlockPct:      30,
			MinSample:     1,
		})
	}

	comparison, err := engine.Compare(context.Background(), []strategy.Factory{build, build})
	require.NoError(t, err)

	require.Len(t, comparison.Results, 2)
	assert.Equal(t, comparison.Results[0].Decisions, comparison.Results[1].Decisions,
		"identical strategies over the same ledger must decide identically")
	assert.Equal(t, comparison.Results[0].Daily, comparison.Results[1].Daily)
}

func TestCompareMatchesIndependentRuns(t *testing.T) {
	start := utcDay(2025, 2, 10)
	end := utcDay(2025, 2, 14)
	repo := steadyRepo(start, end, "alpha", "beta")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   end,
		ModelIDs:  []string{"alpha", "beta"},
	}, loader, nil)
	require.NoError(t, err)

	comparison, err := engine.Compare(context.Background(), []strategy.Factory{
		func() (strategy.Strategy, error) { return healthyThreshold(t), nil },
		func() (strategy.Strategy, error) { return strategy.NewBestOfNStrategy(1) },
	})
	require.NoError(t, err)

	standalone, err := engine.Run(context.Background(), healthyThreshold(t))
	require.NoError(t, err)

	require.Len(t, comparison.Results, 2)
	assert.Equal(t, standalone.Decisions, comparison.Results[0].Decisions,
		"a compared strategy must behave exactly as it does alone")
	assert.Equal(t, standalone.Daily, comparison.Results[0].Daily)
}

func TestCompareRequiresStrategies(t *testing.T) {
	start := utcDay(2025, 2, 10)
	repo := steadyRepo(start, start, "alpha")
	loader := ledger.NewLoader(repo, time.Minute, nil)

	engine, err := NewEngine(Config{
		StartDate: start,
		EndDate:   start,
		ModelIDs:  []string{"alpha"},
	}, loader, nil)
	require.NoError(t, err)

	_, err = engine.Compare(context.Background(), nil)
	assert.Error(t, err)
}
