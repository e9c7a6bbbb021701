package types

import "fmt"

// ActionType is a closed tag selecting which executor handles a proposed
// AI action. New variants are added here and registered with the executor
// registry; the state machine is untouched.
type ActionType string

const (
	ActionTypeCreateInvoice ActionType = "create_invoice"
)

// AllActionTypes returns all registered action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTypeCreateInvoice,
	}
}

// IsValid checks if the action type is known
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeCreateInvoice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return t, nil
}
