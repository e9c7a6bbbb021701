package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[string]*model.Action
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[string]*model.Action),
	}
}

// copyAction creates a deep copy of an action
func copyAction(a *model.Action) *model.Action {
	c := *a
	if a.ExtractedData != nil {
		c.ExtractedData = maps.Clone(a.ExtractedData)
	}
	if a.ExecutedAt != nil {
		t := *a.ExecutedAt
		c.ExecutedAt = &t
	}
	return &c
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyAction(action)
	created.ID = uuid.Must(uuid.NewV7()).String()
	if created.Status == "" {
		created.Status = types.ActionStatusAwaitingConfirmation
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.actions[created.ID] = created
	return copyAction(created), nil
}

func (r *actionRepository) get(userID, id string) (*model.Action, error) {
	action, exists := r.actions[id]
	if !exists || action.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "action not found", goerr.V("id", id))
	}
	return action, nil
}

func (r *actionRepository) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, err := r.get(userID, id)
	if err != nil {
		return nil, err
	}
	return copyAction(action), nil
}

func (r *actionRepository) List(ctx context.Context, userID string) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]*model.Action, 0)
	for _, action := range r.actions {
		if action.UserID == userID {
			actions = append(actions, copyAction(action))
		}
	}
	sortByCreatedAtDesc(actions, func(a *model.Action) time.Time { return a.CreatedAt })
	return actions, nil
}

func (r *actionRepository) Transition(ctx context.Context, userID, id string, from, to types.ActionStatus) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	action, err := r.get(userID, id)
	if err != nil {
		return nil, err
	}

	if action.Status != from {
		return nil, goerr.Wrap(types.ErrInvalidState, "action not in expected state",
			goerr.V("id", id),
			goerr.V("expected", from),
			goerr.V("actual", action.Status),
		)
	}

	action.Status = to
	action.UpdatedAt = time.Now().UTC()
	return copyAction(action), nil
}

func (r *actionRepository) Finalize(ctx context.Context, userID, id string, status types.ActionStatus, entityID, errorMessage string) (*model.Action, error) {
	if !status.IsTerminal() {
		return nil, goerr.New("finalize requires a terminal status", goerr.V("status", status))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	action, err := r.get(userID, id)
	if err != nil {
		return nil, err
	}

	if action.Status != types.ActionStatusExecuting {
		return nil, goerr.Wrap(types.ErrInvalidState, "action not in expected state",
			goerr.V("id", id),
			goerr.V("expected", types.ActionStatusExecuting),
			goerr.V("actual", action.Status),
		)
	}

	now := time.Now().UTC()
	action.Status = status
	action.EntityID = entityID
	action.ErrorMessage = errorMessage
	action.ExecutedAt = &now
	action.UpdatedAt = now
	return copyAction(action), nil
}
