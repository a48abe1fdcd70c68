// Package logger provides a wrapper around logrus for structured logging
// of replay runs and strategy decisions.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance
func NewLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// JSON in production, colored text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}

// ReplayLogger adds replay-flavored structured fields on top of a base logger
type ReplayLogger struct {
	logger *logrus.Logger
}

// NewReplayLogger creates a logger for replay runs
func NewReplayLogger(logger *logrus.Logger) *ReplayLogger {
	return &ReplayLogger{logger: logger}
}

// LogDecision records a single day's strategy decision
func (rl *ReplayLogger) LogDecision(strategyName string, date time.Time, selectedModel string, action string, state string, reason string) {
	rl.logger.WithFields(logrus.Fields{
		"component":      "replay",
		"strategy":       strategyName,
		"date":           date.Format("2006-01-02"),
		"selected_model": selectedModel,
		"action":         action,
		"state":          state,
		"reason":         reason,
	}).Debug("Strategy decision")
}

// LogRunSummary records the aggregate outcome of a replay run
func (rl *ReplayLogger) LogRunSummary(strategyName string, totalPicks int, hitRate float64, cumulativePnL float64, roi float64, switches int, blockedDays int) {
	rl.logger.WithFields(logrus.Fields{
		"component":      "replay",
		"strategy":       strategyName,
		"total_picks":    totalPicks,
		"hit_rate":       hitRate,
		"cumulative_pnl": cumulativePnL,
		"roi":            roi,
		"switches":       switches,
		"blocked_days":   blockedDays,
	}).Info("Replay run complete")
}
