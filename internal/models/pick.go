package models

import (
	"time"
)

// PickRecord represents one graded model prediction loaded from the
// historical ledger. Records are produced once by the ledger and never
// mutated by the simulation core.
type PickRecord struct {
	GameDate       time.Time `db:"game_date" json:"game_date"`
	ModelID        string    `db:"model_id" json:"model_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	IsCorrect      bool      `db:"is_correct" json:"is_correct"`
	Edge           float64   `db:"edge" json:"edge"`
	PredictedValue float64   `db:"predicted_value" json:"predicted_value"`
	LineValue      float64   `db:"line_value" json:"line_value"`
	ActualValue    float64   `db:"actual_value" json:"actual_value"`
	Confidence     float64   `db:"confidence" json:"confidence"`
}

// MeetsEdge checks if the pick clears the minimum edge filter
func (p *PickRecord) MeetsEdge(minEdge float64) bool {
	return p.Edge >= minEdge
}

// MeetsConfidence checks the optional minimum confidence filter.
// A nil threshold disables the filter.
func (p *PickRecord) MeetsConfidence(minConfidence *float64) bool {
	if minConfidence == nil {
		return true
	}
	return p.Confidence >= *minConfidence
}
