package strategy

import (
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// Strategy decides, one day at a time, which prediction model to trust.
// Implementations may carry hysteresis counters across calls; those counters
// belong to the instance alone and are order-dependent, so a strategy must
// only ever see one run's days, in ascending order.
type Strategy interface {
	Name() string

	// Decide examines today's metrics and returns which model (if any) to
	// trust. previousModel is the model selected on the prior day, or empty
	// on the first day of a run.
	Decide(date time.Time, metricsByModel map[string]*models.ModelMetrics, previousModel string) models.Decision

	// Reset clears any hysteresis state so the instance can start a fresh
	// run. A strategy must never be reused across independent runs without
	// resetting.
	Reset()

	// Parameters returns the strategy configuration for reporting
	Parameters() map[string]interface{}
}

// Factory builds a fresh strategy instance. Comparison runs construct each
// strategy from its factory so no mutable state leaks between runs.
type Factory func() (Strategy, error)

func newDecision(date time.Time, selected string, action models.Action, state models.State, reason string) models.Decision {
	return models.Decision{
		Date:          date,
		SelectedModel: selected,
		Action:        action,
		State:         state,
		Reason:        reason,
	}
}
