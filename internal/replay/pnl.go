package replay

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yourusername/model-sentry/internal/models"
)

// Fixed -110 betting economics: risk 110 to win 100
var (
	stakeAmount = decimal.NewFromInt(110)
	winPayout   = decimal.NewFromInt(100)
)

// DefaultMaxPicksPerDay caps how many picks a day's bankroll is spread over
const DefaultMaxPicksPerDay = 5

// DayPnL is the outcome of betting one model's picks for one day
type DayPnL struct {
	Picks   int
	Wins    int
	Losses  int
	HitRate float64
	PnL     float64
}

// SimulateDay bets the given picks at fixed -110 odds. Picks are taken in
// descending edge order (stable, so equal edges keep ledger order) and
// truncated to maxPicksPerDay. A nil or empty slice yields all zeros.
func SimulateDay(picks []*models.PickRecord, maxPicksPerDay int) DayPnL {
	if maxPicksPerDay <= 0 {
		maxPicksPerDay = DefaultMaxPicksPerDay
	}
	if len(picks) == 0 {
		return DayPnL{}
	}

	ordered := make([]*models.PickRecord, len(picks))
	copy(ordered, picks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Edge > ordered[j].Edge
	})
	if len(ordered) > maxPicksPerDay {
		ordered = ordered[:maxPicksPerDay]
	}

	day := DayPnL{Picks: len(ordered)}
	for _, pick := range ordered {
		if pick.IsCorrect {
			day.Wins++
		}
	}
	day.Losses = day.Picks - day.Wins

	pnl := winPayout.Mul(decimal.NewFromInt(int64(day.Wins))).
		Sub(stakeAmount.Mul(decimal.NewFromInt(int64(day.Losses))))
	day.PnL = pnl.InexactFloat64()
	day.HitRate = roundPct(day.Wins, day.Picks)

	return day
}
