package strategy

import (
	"fmt"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// ThresholdParams parameterizes the canonical hysteresis policy. All
// percentages are on the 0-100 scale.
type ThresholdParams struct {
	ChampionID      string
	ChallengerIDs   []string
	WatchPct        float64
	AlertPct        float64
	BlockPct        float64
	MinSample       int
	ChallengerMinHR float64
}

// ThresholdStrategy is the canonical champion/challenger policy: the champion
// stays trusted until its trailing 7-day hit rate degrades through watch,
// alert, and block bands, with consecutive-day counters damping single-day
// noise. Below block it switches to the best eligible challenger, or sits out
// the day entirely when none qualifies.
type ThresholdStrategy struct {
	params ThresholdParams

	belowWatch int
	belowAlert int
	aboveWatch int
}

// NewThresholdStrategy validates parameters and creates the strategy
func NewThresholdStrategy(params ThresholdParams) (*ThresholdStrategy, error) {
	if params.ChampionID == "" {
		return nil, fmt.Errorf("%w: champion id is required", models.ErrInvalidStrategyConfig)
	}
	if params.BlockPct < 0 || params.WatchPct > 100 {
		return nil, fmt.Errorf("%w: thresholds must be percentages in [0, 100]", models.ErrInvalidStrategyConfig)
	}
	if !(params.BlockPct < params.AlertPct && params.AlertPct < params.WatchPct) {
		return nil, fmt.Errorf("%w: thresholds must satisfy block < alert < watch", models.ErrInvalidStrategyConfig)
	}
	if params.MinSample <= 0 {
		return nil, fmt.Errorf("%w: min sample must be positive", models.ErrInvalidStrategyConfig)
	}
	if params.ChallengerMinHR < 0 || params.ChallengerMinHR > 100 {
		return nil, fmt.Errorf("%w: challenger min hit rate must be in [0, 100]", models.ErrInvalidStrategyConfig)
	}
	for _, id := range params.ChallengerIDs {
		if id == params.ChampionID {
			return nil, fmt.Errorf("%w: champion cannot be its own challenger", models.ErrInvalidStrategyConfig)
		}
	}
	return &ThresholdStrategy{params: params}, nil
}

// Name returns strategy name
func (s *ThresholdStrategy) Name() string {
	return "threshold"
}

// Reset clears the hysteresis counters
func (s *ThresholdStrategy) Reset() {
	s.belowWatch = 0
	s.belowAlert = 0
	s.aboveWatch = 0
}

// Parameters returns strategy parameters for reporting
func (s *ThresholdStrategy) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"champion_id":       s.params.ChampionID,
		"challenger_ids":    s.params.ChallengerIDs,
		"watch_pct":         s.params.WatchPct,
		"alert_pct":         s.params.AlertPct,
		"block_pct":         s.params.BlockPct,
		"min_sample":        s.params.MinSample,
		"challenger_min_hr": s.params.ChallengerMinHR,
	}
}

// Decide applies the banded hysteresis machine to today's champion metrics
func (s *ThresholdStrategy) Decide(date time.Time, metricsByModel map[string]*models.ModelMetrics, previousModel string) models.Decision {
	current := previousModel
	if current == "" {
		current = s.params.ChampionID
	}

	champion := metricsByModel[s.params.ChampionID]
	if !champion.HasWindow(s.params.MinSample) {
		// Counters stay untouched; a thin day says nothing about form
		return newDecision(date, current, models.ActionNoChange, models.StateInsufficientData,
			fmt.Sprintf("champion %s has insufficient 7d sample (min %d)", s.params.ChampionID, s.params.MinSample))
	}

	hr := *champion.HitRate7d
	if hr < s.params.WatchPct {
		s.belowWatch++
		s.aboveWatch = 0
	} else {
		s.belowWatch = 0
		s.aboveWatch++
	}
	if hr < s.params.AlertPct {
		s.belowAlert++
	} else {
		s.belowAlert = 0
	}

	// Block check takes priority over everything else
	if hr < s.params.BlockPct {
		if challenger, challengerHR, ok := s.bestChallenger(metricsByModel); ok {
			return newDecision(date, challenger, models.ActionSwitched, models.StateBlocked,
				fmt.Sprintf("champion 7d hit rate %.1f%% below block %.1f%%; switched to %s (%.1f%%)",
					hr, s.params.BlockPct, challenger, challengerHR))
		}
		return newDecision(date, "", models.ActionBlocked, models.StateBlocked,
			fmt.Sprintf("champion 7d hit rate %.1f%% below block %.1f%% and no viable challenger; sitting out", hr, s.params.BlockPct))
	}

	if s.belowAlert >= 3 {
		if challenger, challengerHR, ok := s.bestChallenger(metricsByModel); ok {
			return newDecision(date, challenger, models.ActionSwitched, models.StateDegrading,
				fmt.Sprintf("champion below alert %.1f%% for %d consecutive days; switched to %s (%.1f%%)",
					s.params.AlertPct, s.belowAlert, challenger, challengerHR))
		}
		return newDecision(date, current, models.ActionNoChange, models.StateDegrading,
			fmt.Sprintf("champion below alert %.1f%% for %d consecutive days; no viable challenger", s.params.AlertPct, s.belowAlert))
	}

	if s.belowWatch >= 2 {
		return newDecision(date, current, models.ActionNoChange, models.StateWatch,
			fmt.Sprintf("champion 7d hit rate %.1f%% below watch %.1f%% for %d consecutive days", hr, s.params.WatchPct, s.belowWatch))
	}

	if current != s.params.ChampionID && s.aboveWatch >= 2 {
		return newDecision(date, s.params.ChampionID, models.ActionSwitched, models.StateHealthy,
			fmt.Sprintf("champion recovered above watch %.1f%% for %d consecutive days; switching back", s.params.WatchPct, s.aboveWatch))
	}

	return newDecision(date, current, models.ActionNoChange, models.StateHealthy,
		fmt.Sprintf("champion 7d hit rate %.1f%% healthy", hr))
}

// bestChallenger returns the eligible challenger with the highest 7d hit
// rate. Ties keep the first-listed challenger: iteration follows the
// configured order and only a strictly higher rate displaces the leader.
func (s *ThresholdStrategy) bestChallenger(metricsByModel map[string]*models.ModelMetrics) (string, float64, bool) {
	var (
		bestID string
		bestHR float64
		found  bool
	)
	for _, id := range s.params.ChallengerIDs {
		m := metricsByModel[id]
		if !m.HasWindow(s.params.MinSample) {
			continue
		}
		hr := *m.HitRate7d
		if hr < s.params.ChallengerMinHR {
			continue
		}
		if !found || hr > bestHR {
			bestID = id
			bestHR = hr
			found = true
		}
	}
	return bestID, bestHR, found
}
