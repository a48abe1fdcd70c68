package replay

import (
	"context"
	"fmt"

	"github.com/yourusername/model-sentry/internal/strategy"
)

// Comparison holds the results of replaying several strategies over the same
// pick ledger
type Comparison struct {
	Results []*RunResult `json:"results"`
}

// Compare replays each strategy over an identical ledger. The ledger is
// loaded once; every strategy is built fresh from its factory so hysteresis
// state cannot leak between runs.
func (e *Engine) Compare(ctx context.Context, factories []strategy.Factory) (*Comparison, error) {
	if len(factories) == 0 {
		return nil, fmt.Errorf("at least one strategy is required for comparison")
	}

	led, err := e.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	comparison := &Comparison{}
	for _, build := range factories {
		strat, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to build strategy: %w", err)
		}
		result, err := e.replay(ctx, led, strat)
		if err != nil {
			return nil, fmt.Errorf("replay failed for strategy %s: %w", strat.Name(), err)
		}
		comparison.Results = append(comparison.Results, result)
	}

	return comparison, nil
}
