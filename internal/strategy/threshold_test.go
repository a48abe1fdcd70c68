package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/model-sentry/internal/models"
)

func metricsWith(hitRate7d float64, sample7d int) *models.ModelMetrics {
	hr := hitRate7d
	return &models.ModelMetrics{HitRate7d: &hr, Sample7d: sample7d}
}

func noWindowMetrics() *models.ModelMetrics {
	return &models.ModelMetrics{}
}

func testDay(n int) time.Time {
	return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func defaultThresholdParams() ThresholdParams {
	return ThresholdParams{
		ChampionID:      "A",
		WatchPct:        58,
		AlertPct:        55,
		BlockPct:        52.4,
		MinSample:       20,
		ChallengerMinHR: 55,
	}
}

func TestThresholdDegradationBoundary(t *testing.T) {
	s, err := NewThresholdStrategy(defaultThresholdParams())
	require.NoError(t, err)

	hitRates := []float64{60, 57, 54, 53, 50}
	wantStates := []models.State{
		models.StateHealthy,
		models.StateHealthy,
		models.StateWatch,
		models.StateWatch,
		models.StateBlocked,
	}

	previous := ""
	for i, hr := range hitRates {
		decision := s.Decide(testDay(i), map[string]*models.ModelMetrics{
			"A": metricsWith(hr, 25),
		}, previous)
		assert.Equalf(t, wantStates[i], decision.State, "day %d (hr %.1f)", i+1, hr)
		previous = decision.SelectedModel
	}

	// Day 5 trusted no model
	assert.Equal(t, "", previous)
}

func TestThresholdInsufficientDataLeavesCountersUntouched(t *testing.T) {
	s, err := NewThresholdStrategy(defaultThresholdParams())
	require.NoError(t, err)

	// One weak day puts the watch counter at 1
	s.Decide(testDay(0), map[string]*models.ModelMetrics{"A": metricsWith(54, 25)}, "")
	assert.Equal(t, 1, s.belowWatch)

	// Thin sample day: INSUFFICIENT_DATA, counters frozen
	decision := s.Decide(testDay(1), map[string]*models.ModelMetrics{"A": metricsWith(54, 5)}, "A")
	assert.Equal(t, models.StateInsufficientData, decision.State)
	assert.Equal(t, models.ActionNoChange, decision.Action)
	assert.Equal(t, "A", decision.SelectedModel)
	assert.Equal(t, 1, s.belowWatch)

	// Absent hit rate behaves the same
	decision = s.Decide(testDay(2), map[string]*models.ModelMetrics{"A": noWindowMetrics()}, "A")
	assert.Equal(t, models.StateInsufficientData, decision.State)
	assert.Equal(t, 1, s.belowWatch)

	// Weak day resumes the count where it left off
	s.Decide(testDay(3), map[string]*models.ModelMetrics{"A": metricsWith(54, 25)}, "A")
	assert.Equal(t, 2, s.belowWatch)
}

func TestThresholdBlockSwitchesToBestChallenger(t *testing.T) {
	params := defaultThresholdParams()
	params.ChallengerIDs = []string{"B", "C"}
	s, err := NewThresholdStrategy(params)
	require.NoError(t, err)

	decision := s.Decide(testDay(0), map[string]*models.ModelMetrics{
		"A": metricsWith(50, 25),
		"B": metricsWith(56, 25),
		"C": metricsWith(59, 25),
	}, "")

	assert.Equal(t, "C", decision.SelectedModel)
	assert.Equal(t, models.ActionSwitched, decision.Action)
	assert.Equal(t, models.StateBlocked, decision.State)
}

func TestThresholdChallengerTieKeepsFirstListed(t *testing.T) {
	params := defaultThresholdParams()
	params.ChallengerIDs = []string{"B", "C"}
	s, err := NewThresholdStrategy(params)
	require.NoError(t, err)

	decision := s.Decide(testDay(0), map[string]*models.ModelMetrics{
		"A": metricsWith(50, 25),
		"B": metricsWith(57, 25),
		"C": metricsWith(57, 25),
	}, "")

	assert.Equal(t, "B", decision.SelectedModel, "ties break by configuration order")
}

func TestThresholdChallengerEligibility(t *testing.T) {
	params := defaultThresholdParams()
	params.ChallengerIDs = []string{"B", "C", "D"}
	s, err := NewThresholdStrategy(params)
	require.NoError(t, err)

	decision := s.Decide(testDay(0), map[string]*models.ModelMetrics{
		"A": metricsWith(50, 25),
		"B": metricsWith(70, 10),   // sample too thin
		"C": metricsWith(50, 25),   // below challenger min HR
		"D": noWindowMetrics(),     // no data at all
	}, "")

	assert.Equal(t, "", decision.SelectedModel)
	assert.Equal(t, models.ActionBlocked, decision.Action)
	assert.Equal(t, models.StateBlocked, decision.State)
}

func TestThresholdAlertSwitchAfterThreeDays(t *testing.T) {
	params := defaultThresholdParams()
	params.ChallengerIDs = []string{"B"}
	s, err := NewThresholdStrategy(params)
	require.NoError(t, err)

	// 53 is below alert (55) but above block (52.4)
	metrics := func() map[string]*models.ModelMetrics {
		return map[string]*models.ModelMetrics{
			"A": metricsWith(53, 25),
			"B": metricsWith(60, 25),
		}
	}

	previous := ""
	var decision models.Decision
	for i := 0; i < 3; i++ {
		decision = s.Decide(testDay(i), metrics(), previous)
		previous = decision.SelectedModel
	}

	assert.Equal(t, "B", decision.SelectedModel)
	assert.Equal(t, models.ActionSwitched, decision.Action)
	assert.Equal(t, models.StateDegrading, decision.State)
}

func TestThresholdRecoveryAfterTwoHealthyDays(t *testing.T) {
	params := defaultThresholdParams()
	params.ChallengerIDs = []string{"B"}
	s, err := NewThresholdStrategy(params)
	require.NoError(t, err)

	// Day 1: champion blocked, switch to challenger
	decision := s.Decide(testDay(0), map[string]*models.ModelMetrics{
		"A": metricsWith(50, 25),
		"B": metricsWith(60, 25),
	}, "")
	require.Equal(t, "B", decision.SelectedModel)

	healthy := func() map[string]*models.ModelMetrics {
		return map[string]*models.ModelMetrics{
			"A": metricsWith(61, 25),
			"B": metricsWith(60, 25),
		}
	}

	// Day 2: first healthy day, stay on challenger
	decision = s.Decide(testDay(1), healthy(), decision.SelectedModel)
	assert.Equal(t, "B", decision.SelectedModel)
	assert.Equal(t, models.ActionNoChange, decision.Action)

	// Day 3: second healthy day, recover to champion
	decision = s.Decide(testDay(2), healthy(), decision.SelectedModel)
	assert.Equal(t, "A", decision.SelectedModel)
	assert.Equal(t, models.ActionSwitched, decision.Action)
	assert.Equal(t, models.StateHealthy, decision.State)
}

func TestThresholdResetClearsCounters(t *testing.T) {
	s, err := NewThresholdStrategy(defaultThresholdParams())
	require.NoError(t, err)

	s.Decide(testDay(0), map[string]*models.ModelMetrics{"A": metricsWith(50, 25)}, "")
	require.NotZero(t, s.belowWatch)

	s.Reset()
	assert.Zero(t, s.belowWatch)
	assert.Zero(t, s.belowAlert)
	assert.Zero(t, s.aboveWatch)
}

func TestNewThresholdStrategyValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ThresholdParams)
	}{
		{"missing champion", func(p *ThresholdParams) { p.ChampionID = "" }},
		{"unordered bands", func(p *ThresholdParams) { p.BlockPct = 60 }},
		{"negative block", func(p *ThresholdParams) { p.BlockPct = -1 }},
		{"zero min sample", func(p *ThresholdParams) { p.MinSample = 0 }},
		{"champion as challenger", func(p *ThresholdParams) { p.ChallengerIDs = []string{"A"} }},
		{"challenger hr out of range", func(p *ThresholdParams) { p.ChallengerMinHR = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultThresholdParams()
			tt.mutate(&params)
			_, err := NewThresholdStrategy(params)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidStrategyConfig)
		})
	}
}
