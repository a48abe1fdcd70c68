package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestReplayLoggerDecision(t *testing.T) {
	log, buf := setupTestLogger()
	rl := NewReplayLogger(log)

	rl.LogDecision("threshold", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "points_v2", "NO_CHANGE", "HEALTHY", "champion healthy")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "replay", logEntry["component"])
	assert.Equal(t, "threshold", logEntry["strategy"])
	assert.Equal(t, "2025-02-01", logEntry["date"])
	assert.Equal(t, "points_v2", logEntry["selected_model"])
}

func TestReplayLoggerRunSummary(t *testing.T) {
	log, buf := setupTestLogger()
	rl := NewReplayLogger(log)

	rl.LogRunSummary("threshold", 120, 56.7, 430.0, 3.3, 2, 1)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(120), logEntry["total_picks"])
	assert.Equal(t, float64(2), logEntry["switches"])
}
