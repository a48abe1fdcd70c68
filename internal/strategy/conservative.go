package strategy

import (
	"fmt"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// ConservativeParams parameterizes the degrade-only policy
type ConservativeParams struct {
	ChampionID      string
	ConsecutiveDays int
	ThresholdPct    float64
	BlockPct        float64
	MinSample       int
}

// ConservativeStrategy never switches to a challenger. It rides the champion
// until its hit rate has sat below the block threshold for a configured run
// of consecutive days, and only then sits out. Deliberately slow to act.
type ConservativeStrategy struct {
	params ConservativeParams

	consecutiveBelow int
}

// NewConservativeStrategy validates parameters and creates the strategy
func NewConservativeStrategy(params ConservativeParams) (*ConservativeStrategy, error) {
	if params.ChampionID == "" {
		return nil, fmt.Errorf("%w: champion id is required", models.ErrInvalidStrategyConfig)
	}
	if params.ConsecutiveDays <= 0 {
		return nil, fmt.Errorf("%w: consecutive days must be positive", models.ErrInvalidStrategyConfig)
	}
	if params.BlockPct < 0 || params.ThresholdPct > 100 || params.BlockPct > params.ThresholdPct {
		return nil, fmt.Errorf("%w: thresholds must satisfy 0 <= block <= threshold <= 100", models.ErrInvalidStrategyConfig)
	}
	if params.MinSample <= 0 {
		return nil, fmt.Errorf("%w: min sample must be positive", models.ErrInvalidStrategyConfig)
	}
	return &ConservativeStrategy{params: params}, nil
}

// Name returns strategy name
func (s *ConservativeStrategy) Name() string {
	return "conservative"
}

// Reset clears the hysteresis counter
func (s *ConservativeStrategy) Reset() {
	s.consecutiveBelow = 0
}

// Parameters returns strategy parameters for reporting
func (s *ConservativeStrategy) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"champion_id":      s.params.ChampionID,
		"consecutive_days": s.params.ConsecutiveDays,
		"threshold_pct":    s.params.ThresholdPct,
		"block_pct":        s.params.BlockPct,
		"min_sample":       s.params.MinSample,
	}
}

// Decide blocks only after sustained underperformance, otherwise holds
func (s *ConservativeStrategy) Decide(date time.Time, metricsByModel map[string]*models.ModelMetrics, previousModel string) models.Decision {
	current := previousModel
	if current == "" {
		current = s.params.ChampionID
	}

	champion := metricsByModel[s.params.ChampionID]
	if !champion.HasWindow(s.params.MinSample) {
		return newDecision(date, current, models.ActionNoChange, models.StateInsufficientData,
			fmt.Sprintf("champion %s has insufficient 7d sample (min %d)", s.params.ChampionID, s.params.MinSample))
	}

	hr := *champion.HitRate7d
	if hr < s.params.ThresholdPct {
		s.consecutiveBelow++
	} else {
		s.consecutiveBelow = 0
	}

	if hr < s.params.BlockPct && s.consecutiveBelow >= s.params.ConsecutiveDays {
		return newDecision(date, "", models.ActionBlocked, models.StateBlocked,
			fmt.Sprintf("champion 7d hit rate %.1f%% below block %.1f%% after %d consecutive weak days; sitting out",
				hr, s.params.BlockPct, s.consecutiveBelow))
	}

	if s.consecutiveBelow >= s.params.ConsecutiveDays {
		return newDecision(date, current, models.ActionNoChange, models.StateDegrading,
			fmt.Sprintf("champion below %.1f%% for %d consecutive days but above block %.1f%%; holding",
				s.params.ThresholdPct, s.consecutiveBelow, s.params.BlockPct))
	}

	return newDecision(date, current, models.ActionNoChange, models.StateHealthy,
		fmt.Sprintf("champion 7d hit rate %.1f%% acceptable", hr))
}
