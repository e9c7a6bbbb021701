package types

import "fmt"

// ActionStatus represents the lifecycle status of a proposed AI action
type ActionStatus string

const (
	ActionStatusAwaitingConfirmation ActionStatus = "awaiting_confirmation"
	ActionStatusExecuting            ActionStatus = "executing"
	ActionStatusCompleted            ActionStatus = "completed"
	ActionStatusFailed               ActionStatus = "failed"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusAwaitingConfirmation,
		ActionStatusExecuting,
		ActionStatusCompleted,
		ActionStatusFailed,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusAwaitingConfirmation,
		ActionStatusExecuting,
		ActionStatusCompleted,
		ActionStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s
func (s ActionStatus) IsTerminal() bool {
	return s == ActionStatusCompleted || s == ActionStatusFailed
}

// CanTransitionTo reports whether the status may move forward to next.
// Transitions are forward-only: awaiting_confirmation → executing →
// {completed, failed}.
func (s ActionStatus) CanTransitionTo(next ActionStatus) bool {
	switch s {
	case ActionStatusAwaitingConfirmation:
		return next == ActionStatusExecuting
	case ActionStatusExecuting:
		return next.IsTerminal()
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
