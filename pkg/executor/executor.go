package executor

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// Executor performs one confirmed AI action. Implementations receive the
// raw extracted data of the action and are responsible for validating it.
type Executor interface {
	Execute(ctx context.Context, data map[string]any, userID, actionID string) (*model.ActionResult, error)
}

// Registry dispatches confirmed actions to the executor registered for
// their action type. Registration happens at startup only, so lookups are
// not locked.
type Registry struct {
	executors map[types.ActionType]Executor
}

func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[types.ActionType]Executor),
	}
}

func (r *Registry) Register(actionType types.ActionType, exec Executor) {
	r.executors[actionType] = exec
}

// Dispatch runs the executor for the action's type. An unregistered type
// returns types.ErrUnknownActionType (wrapped).
func (r *Registry) Dispatch(ctx context.Context, actionType types.ActionType, data map[string]any, userID, actionID string) (*model.ActionResult, error) {
	exec, ok := r.executors[actionType]
	if !ok {
		return nil, goerr.Wrap(types.ErrUnknownActionType, "no executor registered",
			goerr.V("action_type", actionType))
	}
	return exec.Execute(ctx, data, userID, actionID)
}
