package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/model-sentry/internal/database"
	"github.com/yourusername/model-sentry/internal/models"
)

const errScanPick = "failed to scan pick: %w"

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

// GetGradedPicks retrieves graded picks for a date range and model set
func (r *PostgresPickRepository) GetGradedPicks(ctx context.Context, query PickQuery) ([]*models.PickRecord, error) {
	sql := `
		SELECT game_date, model_id, subject_id, recommendation, is_correct,
		       edge, predicted_value, line_value, actual_value, confidence
		FROM graded_picks
		WHERE game_date >= $1
		  AND game_date <= $2
		  AND model_id = ANY($3)
		  AND edge >= $4
	`
	args := []interface{}{query.StartDate, query.EndDate, query.ModelIDs, query.MinEdge}

	if query.MinConfidence != nil {
		sql += " AND confidence >= $5"
		args = append(args, *query.MinConfidence)
	}
	sql += " ORDER BY game_date ASC, id ASC"

	rows, err := r.db.GetPool().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query graded picks: %w", err)
	}
	defer rows.Close()

	var picks []*models.PickRecord
	for rows.Next() {
		pick := &models.PickRecord{}
		err := rows.Scan(
			&pick.GameDate, &pick.ModelID, &pick.SubjectID, &pick.Recommendation,
			&pick.IsCorrect, &pick.Edge, &pick.PredictedValue, &pick.LineValue,
			&pick.ActualValue, &pick.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanPick, err)
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}
