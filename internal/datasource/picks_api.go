package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/model-sentry/internal/models"
	"github.com/yourusername/model-sentry/internal/repository"
)

// PicksAPIClient fetches graded picks from an HTTP results API. It satisfies
// the same read-only query contract as the Postgres ledger, for deployments
// where the grading service exposes picks over HTTP instead of a shared
// database.
type PicksAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *log.Logger
}

// pickPayload is the wire shape of one graded pick from the API
type pickPayload struct {
	GameDate       string  `json:"game_date"`
	ModelID        string  `json:"model_id"`
	SubjectID      string  `json:"subject_id"`
	Recommendation string  `json:"recommendation"`
	IsCorrect      bool    `json:"is_correct"`
	Edge           float64 `json:"edge"`
	PredictedValue float64 `json:"predicted_value"`
	LineValue      float64 `json:"line_value"`
	ActualValue    float64 `json:"actual_value"`
	Confidence     float64 `json:"confidence"`
}

type picksResponse struct {
	Picks []pickPayload `json:"picks"`
}

// NewPicksAPIClient creates a new picks API ledger source
func NewPicksAPIClient(httpClient *RateLimitedHTTPClient, baseURL string, apiKey string, logger *log.Logger) *PicksAPIClient {
	return &PicksAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// GetGradedPicks retrieves graded picks for a date range and model set
func (c *PicksAPIClient) GetGradedPicks(ctx context.Context, query repository.PickQuery) ([]*models.PickRecord, error) {
	params := url.Values{}
	params.Set("start_date", query.StartDate.Format("2006-01-02"))
	params.Set("end_date", query.EndDate.Format("2006-01-02"))
	params.Set("model_ids", strings.Join(query.ModelIDs, ","))
	params.Set("min_edge", strconv.FormatFloat(query.MinEdge, 'f', -1, 64))
	if query.MinConfidence != nil {
		params.Set("min_confidence", strconv.FormatFloat(*query.MinConfidence, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf("%s/v1/picks/graded?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("picks API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("picks API returned status %d", resp.StatusCode)
	}

	var payload picksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode picks API response: %w", err)
	}

	picks := make([]*models.PickRecord, 0, len(payload.Picks))
	for _, raw := range payload.Picks {
		pick, err := normalizePick(raw)
		if err != nil {
			c.logger.Printf("Skipping malformed pick for %s on %s: %v", raw.ModelID, raw.GameDate, err)
			continue
		}
		picks = append(picks, pick)
	}

	return picks, nil
}

func normalizePick(raw pickPayload) (*models.PickRecord, error) {
	gameDate, err := time.Parse("2006-01-02", raw.GameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game_date: %w", err)
	}
	if raw.ModelID == "" {
		return nil, fmt.Errorf("missing model_id")
	}
	return &models.PickRecord{
		GameDate:       gameDate.UTC(),
		ModelID:        raw.ModelID,
		SubjectID:      raw.SubjectID,
		Recommendation: raw.Recommendation,
		IsCorrect:      raw.IsCorrect,
		Edge:           raw.Edge,
		PredictedValue: raw.PredictedValue,
		LineValue:      raw.LineValue,
		ActualValue:    raw.ActualValue,
		Confidence:     raw.Confidence,
	}, nil
}
