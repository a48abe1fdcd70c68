package strategy

import (
	"fmt"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// OracleStrategy picks whichever model actually hit best today, using the
// day's own graded outcomes. It is non-causal: the information it acts on
// does not exist until after the games are played. Use it only to calibrate
// an upper bound on what model selection could ever earn, never live.
type OracleStrategy struct{}

// NewOracleStrategy creates the hindsight strategy
func NewOracleStrategy() (*OracleStrategy, error) {
	return &OracleStrategy{}, nil
}

// Name returns strategy name
func (s *OracleStrategy) Name() string {
	return "oracle"
}

// Reset is a no-op; the strategy is stateless
func (s *OracleStrategy) Reset() {}

// Parameters returns strategy parameters for reporting
func (s *OracleStrategy) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}

// Decide selects the model with the best hit rate on today's actual outcomes
func (s *OracleStrategy) Decide(date time.Time, metricsByModel map[string]*models.ModelMetrics, previousModel string) models.Decision {
	var (
		bestID string
		bestHR float64
		found  bool
	)
	for _, id := range sortedModelIDs(metricsByModel) {
		m := metricsByModel[id]
		if m == nil || m.DailyPicks == 0 {
			continue
		}
		if !found || m.DailyHitRate > bestHR {
			bestID = id
			bestHR = m.DailyHitRate
			found = true
		}
	}

	if !found {
		return newDecision(date, previousModel, models.ActionNoChange, models.StateInsufficientData,
			"no model has picks today")
	}

	if bestID != previousModel {
		return newDecision(date, bestID, models.ActionSwitched, models.StateHealthy,
			fmt.Sprintf("%s hit %.1f%% today (hindsight)", bestID, bestHR))
	}
	return newDecision(date, bestID, models.ActionNoChange, models.StateHealthy,
		fmt.Sprintf("%s hit %.1f%% today (hindsight)", bestID, bestHR))
}
