package strategy

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// BestOfNStrategy greedily trusts whichever model has the best trailing
// 7-day hit rate today. It carries no hysteresis at all and may switch every
// single day when two models alternate or tie; that non-sticky behavior is
// intentional. It exists as an upper-bound probe, not a live policy.
type BestOfNStrategy struct {
	minSample int
}

// NewBestOfNStrategy validates parameters and creates the strategy
func NewBestOfNStrategy(minSample int) (*BestOfNStrategy, error) {
	if minSample <= 0 {
		return nil, fmt.Errorf("%w: min sample must be positive", models.ErrInvalidStrategyConfig)
	}
	return &BestOfNStrategy{minSample: minSample}, nil
}

// Name returns strategy name
func (s *BestOfNStrategy) Name() string {
	return "best_of_n"
}

// Reset is a no-op; the strategy is stateless
func (s *BestOfNStrategy) Reset() {}

// Parameters returns strategy parameters for reporting
func (s *BestOfNStrategy) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"min_sample": s.minSample,
	}
}

// Decide selects the model with the highest defined 7d hit rate
func (s *BestOfNStrategy) Decide(date time.Time, metricsByModel map[string]*models.ModelMetrics, previousModel string) models.Decision {
	var (
		bestID string
		bestHR float64
		found  bool
	)
	// Sorted iteration keeps runs byte-identical; ties go to the first
	// model id in lexical order
	for _, id := range sortedModelIDs(metricsByModel) {
		m := metricsByModel[id]
		if !m.HasWindow(s.minSample) {
			continue
		}
		if hr := *m.HitRate7d; !found || hr > bestHR {
			bestID = id
			bestHR = hr
			found = true
		}
	}

	if !found {
		return newDecision(date, previousModel, models.ActionNoChange, models.StateInsufficientData,
			fmt.Sprintf("no model has a 7d sample of at least %d", s.minSample))
	}

	if bestID != previousModel {
		return newDecision(date, bestID, models.ActionSwitched, models.StateHealthy,
			fmt.Sprintf("%s leads with 7d hit rate %.1f%%", bestID, bestHR))
	}
	return newDecision(date, bestID, models.ActionNoChange, models.StateHealthy,
		fmt.Sprintf("%s still leads with 7d hit rate %.1f%%", bestID, bestHR))
}

func sortedModelIDs(metricsByModel map[string]*models.ModelMetrics) []string {
	ids := make([]string, 0, len(metricsByModel))
	for id := range metricsByModel {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
