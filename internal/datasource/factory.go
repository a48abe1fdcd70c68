package datasource

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/model-sentry/internal/config"
	"github.com/yourusername/model-sentry/internal/database"
	"github.com/yourusername/model-sentry/internal/repository"
)

// SourceType identifies a ledger backend
type SourceType string

const (
	// PostgresSourceType reads graded picks from the shared Postgres ledger
	PostgresSourceType SourceType = "postgres"
	// PicksAPISourceType reads graded picks from the grading service's HTTP API
	PicksAPISourceType SourceType = "picks_api"
)

// Factory creates PickRepository implementations based on configuration
type Factory struct {
	config *config.Config
	logger *log.Logger
}

// NewFactory creates a new ledger source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{config: cfg, logger: logger}
}

// Create builds the configured ledger source
func (f *Factory) Create(ctx context.Context) (repository.PickRepository, error) {
	switch SourceType(f.config.Ledger.Source) {
	case PostgresSourceType:
		db, err := database.NewDB(ctx, &f.config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres ledger: %w", err)
		}
		return repository.NewPostgresPickRepository(db), nil

	case PicksAPISourceType:
		apiCfg := f.config.PicksAPI
		if apiCfg.BaseURL == "" {
			return nil, fmt.Errorf("picks API base URL is required")
		}
		clientCfg := DefaultHTTPClientConfig()
		if apiCfg.TimeoutSeconds > 0 {
			clientCfg.Timeout = time.Duration(apiCfg.TimeoutSeconds) * time.Second
		}
		if apiCfg.MaxRetries > 0 {
			clientCfg.MaxRetries = apiCfg.MaxRetries
		}
		if apiCfg.RateLimit > 0 {
			clientCfg.RateLimit = apiCfg.RateLimit
		}
		httpClient := NewRateLimitedHTTPClient(clientCfg, f.logger)
		return NewPicksAPIClient(httpClient, apiCfg.BaseURL, apiCfg.APIKey, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown ledger source: %s", f.config.Ledger.Source)
	}
}
