package repository

import (
	"context"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
)

// PickQuery describes one graded-picks fetch from the historical ledger.
// MinConfidence is optional; nil disables the confidence filter.
type PickQuery struct {
	StartDate     time.Time
	EndDate       time.Time
	ModelIDs      []string
	MinEdge       float64
	MinConfidence *float64
}

// PickRepository is the read-only query contract the simulation core has on
// the historical ledger. Any store satisfying it is acceptable.
type PickRepository interface {
	// GetGradedPicks returns every graded pick matching the query, ordered
	// by game date then ledger insertion order.
	GetGradedPicks(ctx context.Context, query PickQuery) ([]*models.PickRecord, error)
}
