package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/model-sentry/internal/models"
)

func gradedPick(date time.Time, model string, edge float64, correct bool) *models.PickRecord {
	return &models.PickRecord{
		GameDate:  date,
		ModelID:   model,
		Edge:      edge,
		IsCorrect: correct,
	}
}

func utcDay(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestSimulateDay(t *testing.T) {
	day := utcDay(2025, 3, 1)

	tests := []struct {
		name        string
		picks       []*models.PickRecord
		maxPicks    int
		wantPicks   int
		wantWins    int
		wantPnL     float64
		wantHitRate float64
	}{
		{
			name: "two wins one loss",
			picks: []*models.PickRecord{
				gradedPick(day, "alpha", 10, true),
				gradedPick(day, "alpha", 7, true),
				gradedPick(day, "alpha", 5, false),
			},
			maxPicks:    5,
			wantPicks:   3,
			wantWins:    2,
			wantPnL:     90,
			wantHitRate: 66.7,
		},
		{
			name: "all losses",
			picks: []*models.PickRecord{
				gradedPick(day, "alpha", 4, false),
				gradedPick(day, "alpha", 3, false),
			},
			maxPicks:    5,
			wantPicks:   2,
			wantWins:    0,
			wantPnL:     -220,
			wantHitRate: 0,
		},
		{
			name:      "no picks",
			picks:     nil,
			maxPicks:  5,
			wantPicks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimulateDay(tt.picks, tt.maxPicks)

			assert.Equal(t, tt.wantPicks, got.Picks)
			assert.Equal(t, tt.wantWins, got.Wins)
			assert.Equal(t, tt.wantPicks-tt.wantWins, got.Losses)
			assert.Equal(t, tt.wantPnL, got.PnL)
			assert.Equal(t, tt.wantHitRate, got.HitRate)
		})
	}
}

func TestSimulateDayTruncatesByEdge(t *testing.T) {
	day := utcDay(2025, 3, 1)
	picks := []*models.PickRecord{
		gradedPick(day, "alpha", 1, false),
		gradedPick(day, "alpha", 6, true),
		gradedPick(day, "alpha", 2, true),
		gradedPick(day, "alpha", 5, true),
		gradedPick(day, "alpha", 4, true),
		gradedPick(day, "alpha", 3, true),
	}

	got := SimulateDay(picks, 5)

	// Lowest edge pick is the loser; truncation must drop it
	assert.Equal(t, 5, got.Picks)
	assert.Equal(t, 5, got.Wins)
	assert.Equal(t, float64(500), got.PnL)
	assert.Equal(t, float64(100), got.HitRate)
}

func TestSimulateDayEqualEdgesKeepLedgerOrder(t *testing.T) {
	day := utcDay(2025, 3, 1)
	picks := []*models.PickRecord{
		gradedPick(day, "alpha", 4, true),
		gradedPick(day, "alpha", 4, false),
	}

	got := SimulateDay(picks, 1)

	assert.Equal(t, 1, got.Picks)
	assert.Equal(t, 1, got.Wins, "tied edges should keep the first ledger entry")
	assert.Equal(t, float64(100), got.PnL)
}

func TestSimulateDayDoesNotMutateInput(t *testing.T) {
	day := utcDay(2025, 3, 1)
	first := gradedPick(day, "alpha", 1, false)
	second := gradedPick(day, "alpha", 9, true)
	picks := []*models.PickRecord{first, second}

	SimulateDay(picks, 5)

	assert.Same(t, first, picks[0])
	assert.Same(t, second, picks[1])
}
