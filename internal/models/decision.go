package models

import "time"

// Action describes what a strategy did with the active model on a given day
type Action string

const (
	ActionNoChange  Action = "NO_CHANGE"
	ActionSwitched  Action = "SWITCHED"
	ActionBlocked   Action = "BLOCKED"
	ActionRecovered Action = "RECOVERED"
)

// State describes the health assessment behind a decision
type State string

const (
	StateHealthy          State = "HEALTHY"
	StateWatch            State = "WATCH"
	StateDegrading        State = "DEGRADING"
	StateBlocked          State = "BLOCKED"
	StateInsufficientData State = "INSUFFICIENT_DATA"
)

// Decision is the outcome of one strategy call for one simulated day.
// SelectedModel is empty exactly when State is BLOCKED and no model was
// trusted for the day.
type Decision struct {
	Date          time.Time `json:"date"`
	SelectedModel string    `json:"selected_model,omitempty"`
	Action        Action    `json:"action"`
	Reason        string    `json:"reason"`
	State         State     `json:"state"`
}

// NoModel reports whether the decision trusted no model for the day
func (d Decision) NoModel() bool {
	return d.SelectedModel == ""
}
