package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyResult captures the economics of one simulated day. Results are
// emitted in strictly ascending date order and CumulativePnL equals the
// prefix sum of PnL.
type DailyResult struct {
	Date          time.Time `json:"date"`
	ModelID       string    `json:"model_id,omitempty"`
	Picks         int       `json:"picks"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	HitRate       float64   `json:"hit_rate"`
	PnL           float64   `json:"pnl"`
	CumulativePnL float64   `json:"cumulative_pnl"`
	State         State     `json:"state"`
}

// RunSummary aggregates a full simulation run
type RunSummary struct {
	RunID         uuid.UUID `json:"run_id"`
	StrategyName  string    `json:"strategy_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalPicks    int       `json:"total_picks"`
	TotalWins     int       `json:"total_wins"`
	TotalLosses   int       `json:"total_losses"`
	HitRate       float64   `json:"hit_rate"`
	CumulativePnL float64   `json:"cumulative_pnl"`
	ROI           float64   `json:"roi"`
	Switches      int       `json:"switches"`
	BlockedDays   int       `json:"blocked_days"`
	ModelsUsed    []string  `json:"models_used"`
}
