package models

import "errors"

// Custom errors
var (
	ErrDataUnavailable       = errors.New("historical ledger unavailable")
	ErrInvalidStrategyConfig = errors.New("invalid strategy configuration")
	ErrNotFound              = errors.New("record not found")
)
