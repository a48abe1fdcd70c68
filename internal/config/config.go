// Package config provides configuration management for the Model Sentry application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Ledger     LedgerConfig     `mapstructure:"ledger" validate:"required"`
	PicksAPI   PicksAPIConfig   `mapstructure:"picks_api"`
	Replay     ReplayConfig     `mapstructure:"replay" validate:"required"`
	Strategies StrategiesConfig `mapstructure:"strategies" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// LedgerConfig represents how historical graded picks are sourced
type LedgerConfig struct {
	Source          string   `mapstructure:"source" validate:"required,oneof=postgres picks_api"`
	MinEdge         float64  `mapstructure:"min_edge" validate:"gte=0"`
	MinConfidence   *float64 `mapstructure:"min_confidence" validate:"omitempty,gte=0,lte=100"`
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// PicksAPIConfig represents the HTTP picks-API ledger source
type PicksAPIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// ReplayConfig represents the simulated window and betting limits
type ReplayConfig struct {
	StartDate      string   `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string   `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	ModelIDs       []string `mapstructure:"model_ids" validate:"required,min=1"`
	MaxPicksPerDay int      `mapstructure:"max_picks_per_day" validate:"required,gt=0"`
}

// StrategiesConfig holds parameters for each decision strategy variant
type StrategiesConfig struct {
	Threshold    ThresholdConfig    `mapstructure:"threshold"`
	BestOfN      BestOfNConfig      `mapstructure:"best_of_n"`
	Conservative ConservativeConfig `mapstructure:"conservative"`
}

// ThresholdConfig parameterizes the canonical hysteresis strategy
type ThresholdConfig struct {
	ChampionID      string   `mapstructure:"champion_id"`
	ChallengerIDs   []string `mapstructure:"challenger_ids"`
	WatchPct        float64  `mapstructure:"watch_pct"`
	AlertPct        float64  `mapstructure:"alert_pct"`
	BlockPct        float64  `mapstructure:"block_pct"`
	MinSample       int      `mapstructure:"min_sample"`
	ChallengerMinHR float64  `mapstructure:"challenger_min_hr"`
}

// BestOfNConfig parameterizes the greedy best-of-N strategy
type BestOfNConfig struct {
	MinSample int `mapstructure:"min_sample"`
}

// ConservativeConfig parameterizes the degrade-only strategy
type ConservativeConfig struct {
	ChampionID      string  `mapstructure:"champion_id"`
	ConsecutiveDays int     `mapstructure:"consecutive_days"`
	ThresholdPct    float64 `mapstructure:"threshold_pct"`
	BlockPct        float64 `mapstructure:"block_pct"`
	MinSample       int     `mapstructure:"min_sample"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
