package replay

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/model-sentry/internal/ledger"
	"github.com/yourusername/model-sentry/internal/models"
)

// Rolling window sizes in days
const (
	windowShort = 7
	windowMid   = 14
	windowLong  = 30
)

// ComputeModelMetrics derives a model's trailing statistics as of targetDate.
// A window holding no picks yields a nil hit rate, never a division by zero.
// Metrics are recomputed fresh per (date, model); no sliding state is kept,
// so results cannot depend on iteration history.
func ComputeModelMetrics(l *ledger.Ledger, targetDate time.Time, modelID string) *models.ModelMetrics {
	m := &models.ModelMetrics{ModelID: modelID}

	var wins7, wins14, wins30 int
	for daysAgo := 0; daysAgo < windowLong; daysAgo++ {
		picks := l.PicksFor(targetDate.AddDate(0, 0, -daysAgo), modelID)
		if len(picks) == 0 {
			continue
		}
		wins := 0
		for _, p := range picks {
			if p.IsCorrect {
				wins++
			}
		}
		if daysAgo < windowShort {
			m.Sample7d += len(picks)
			wins7 += wins
		}
		if daysAgo < windowMid {
			m.Sample14d += len(picks)
			wins14 += wins
		}
		m.Sample30d += len(picks)
		wins30 += wins

		if daysAgo == 0 {
			m.DailyPicks = len(picks)
			m.DailyWins = wins
		}
	}

	m.HitRate7d = hitRate(wins7, m.Sample7d)
	m.HitRate14d = hitRate(wins14, m.Sample14d)
	m.HitRate30d = hitRate(wins30, m.Sample30d)
	if m.DailyPicks > 0 {
		m.DailyHitRate = roundPct(m.DailyWins, m.DailyPicks)
	}

	return m
}

func hitRate(wins, sample int) *float64 {
	if sample == 0 {
		return nil
	}
	rate := roundPct(wins, sample)
	return &rate
}

// roundPct computes 100*wins/sample rounded to 1 decimal place
func roundPct(wins, sample int) float64 {
	return decimal.NewFromInt(int64(wins) * 100).
		Div(decimal.NewFromInt(int64(sample))).
		Round(1).
		InexactFloat64()
}
