package strategy

import (
	"fmt"
	"strings"

	"github.com/yourusername/model-sentry/internal/config"
)

// Names lists every strategy the registry can build
func Names() []string {
	return []string{"threshold", "best_of_n", "conservative", "oracle"}
}

// FactoryFromConfig resolves a strategy name to a factory bound to its
// configured parameters. The factory builds a fresh instance per call.
func FactoryFromConfig(name string, cfg *config.StrategiesConfig) (Factory, error) {
	switch name {
	case "threshold":
		params := ThresholdParams{
			ChampionID:      cfg.Threshold.ChampionID,
			ChallengerIDs:   cfg.Threshold.ChallengerIDs,
			WatchPct:        cfg.Threshold.WatchPct,
			AlertPct:        cfg.Threshold.AlertPct,
			BlockPct:        cfg.Threshold.BlockPct,
			MinSample:       cfg.Threshold.MinSample,
			ChallengerMinHR: cfg.Threshold.ChallengerMinHR,
		}
		return func() (Strategy, error) { return NewThresholdStrategy(params) }, nil
	case "best_of_n":
		minSample := cfg.BestOfN.MinSample
		return func() (Strategy, error) { return NewBestOfNStrategy(minSample) }, nil
	case "conservative":
		params := ConservativeParams{
			ChampionID:      cfg.Conservative.ChampionID,
			ConsecutiveDays: cfg.Conservative.ConsecutiveDays,
			ThresholdPct:    cfg.Conservative.ThresholdPct,
			BlockPct:        cfg.Conservative.BlockPct,
			MinSample:       cfg.Conservative.MinSample,
		}
		return func() (Strategy, error) { return NewConservativeStrategy(params) }, nil
	case "oracle":
		return func() (Strategy, error) { return NewOracleStrategy() }, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q, expected one of: %s", name, strings.Join(Names(), ", "))
	}
}
