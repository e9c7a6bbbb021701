package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// ActionRepository defines data access for proposed AI actions.
//
// Transition and Finalize are the only mutations and both are atomic
// compare-and-swap operations: the status check and the write happen in one
// repository-level transaction, so two concurrent confirmations of the same
// action can never both pass the guard.
type ActionRepository interface {
	// Create persists a new action in awaiting_confirmation state with an
	// auto-generated ID
	Create(ctx context.Context, action *model.Action) (*model.Action, error)

	// Get retrieves an action by ID, scoped by owner
	Get(ctx context.Context, userID, id string) (*model.Action, error)

	// List retrieves all actions of the owner, newest first
	List(ctx context.Context, userID string) ([]*model.Action, error)

	// Transition moves the action from the expected status to the next one.
	// It returns types.ErrInvalidState (wrapped) when the persisted status
	// does not equal from at commit time.
	Transition(ctx context.Context, userID, id string, from, to types.ActionStatus) (*model.Action, error)

	// Finalize moves the action from executing to the given terminal status,
	// recording the created entity ID on success or the error message on
	// failure, and sets executed_at exactly once. Same CAS semantics as
	// Transition.
	Finalize(ctx context.Context, userID, id string, status types.ActionStatus, entityID, errorMessage string) (*model.Action, error)
}
