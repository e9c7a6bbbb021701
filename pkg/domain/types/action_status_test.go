package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

func TestActionStatusTransitions(t *testing.T) {
	t.Run("awaiting_confirmation may only move to executing", func(t *testing.T) {
		s := types.ActionStatusAwaitingConfirmation
		gt.True(t, s.CanTransitionTo(types.ActionStatusExecuting))
		gt.False(t, s.CanTransitionTo(types.ActionStatusCompleted))
		gt.False(t, s.CanTransitionTo(types.ActionStatusFailed))
		gt.False(t, s.CanTransitionTo(types.ActionStatusAwaitingConfirmation))
	})

	t.Run("executing may only move to a terminal status", func(t *testing.T) {
		s := types.ActionStatusExecuting
		gt.True(t, s.CanTransitionTo(types.ActionStatusCompleted))
		gt.True(t, s.CanTransitionTo(types.ActionStatusFailed))
		gt.False(t, s.CanTransitionTo(types.ActionStatusAwaitingConfirmation))
		gt.False(t, s.CanTransitionTo(types.ActionStatusExecuting))
	})

	t.Run("terminal statuses are absorbing", func(t *testing.T) {
		for _, s := range []types.ActionStatus{types.ActionStatusCompleted, types.ActionStatusFailed} {
			gt.True(t, s.IsTerminal())
			for _, next := range types.AllActionStatuses() {
				gt.False(t, s.CanTransitionTo(next))
			}
		}
	})
}

func TestParseActionStatus(t *testing.T) {
	t.Run("valid status", func(t *testing.T) {
		s := gt.R1(types.ParseActionStatus("awaiting_confirmation")).NoError(t)
		gt.Value(t, s).Equal(types.ActionStatusAwaitingConfirmation)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := types.ParseActionStatus("pending")
		gt.Value(t, err).NotNil()
	})
}

func TestParseActionType(t *testing.T) {
	t.Run("known type", func(t *testing.T) {
		v := gt.R1(types.ParseActionType("create_invoice")).NoError(t)
		gt.Value(t, v).Equal(types.ActionTypeCreateInvoice)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := types.ParseActionType("delete_everything")
		gt.Value(t, err).NotNil()
	})
}

func TestParseStockAction(t *testing.T) {
	t.Run("valid actions", func(t *testing.T) {
		gt.R1(types.ParseStockAction("mark_sold")).NoError(t)
		gt.R1(types.ParseStockAction("mark_unsold")).NoError(t)
	})

	t.Run("invalid action", func(t *testing.T) {
		_, err := types.ParseStockAction("sell")
		gt.Value(t, err).NotNil()
	})
}
