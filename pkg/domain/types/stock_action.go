package types

import "github.com/m-mizutani/goerr/v2"

// StockAction is an operation applied to a stock item
type StockAction string

const (
	StockActionMarkSold   StockAction = "mark_sold"
	StockActionMarkUnsold StockAction = "mark_unsold"
)

// IsValid checks if the stock action is valid
func (a StockAction) IsValid() bool {
	switch a {
	case StockActionMarkSold, StockActionMarkUnsold:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stock action
func (a StockAction) String() string {
	return string(a)
}

// ParseStockAction parses a string into a StockAction. The input comes
// straight from the request body, so failures carry the validation tag.
func ParseStockAction(s string) (StockAction, error) {
	a := StockAction(s)
	if !a.IsValid() {
		return "", goerr.Wrap(ErrValidation,
			"invalid stock action (valid actions are: mark_sold, mark_unsold)",
			goerr.V("action", s))
	}
	return a, nil
}
