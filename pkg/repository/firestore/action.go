package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{client: client}
}

func (r *actionRepository) collection() string {
	return collectionName(r.collectionPrefix, "ai_actions")
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	now := time.Now().UTC()
	created := *action
	created.ID = uuid.Must(uuid.NewV7()).String()
	if created.Status == "" {
		created.Status = types.ActionStatusAwaitingConfirmation
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("id", created.ID))
	}
	return &created, nil
}

// getOwned reads the action doc inside or outside a transaction and enforces
// the owner scope. A doc owned by another user is reported as not found.
func (r *actionRepository) decodeOwned(doc *firestore.DocumentSnapshot, err error, userID, id string) (*model.Action, error) {
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	var action model.Action
	if err := doc.DataTo(&action); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}
	if action.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "action not found", goerr.V("id", id))
	}
	return &action, nil
}

func (r *actionRepository) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	return r.decodeOwned(doc, err, userID, id)
}

func (r *actionRepository) List(ctx context.Context, userID string) ([]*model.Action, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	actions := make([]*model.Action, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list actions", goerr.V("user_id", userID))
		}
		var action model.Action
		if err := doc.DataTo(&action); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action", goerr.V("doc", doc.Ref.ID))
		}
		actions = append(actions, &action)
	}
	return actions, nil
}

func (r *actionRepository) Transition(ctx context.Context, userID, id string, from, to types.ActionStatus) (*model.Action, error) {
	docRef := r.client.Collection(r.collection()).Doc(id)

	var result *model.Action
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		action, err := r.decodeOwned(doc, err, userID, id)
		if err != nil {
			return err
		}

		if action.Status != from {
			return goerr.Wrap(types.ErrInvalidState, "action not in expected state",
				goerr.V("id", id),
				goerr.V("expected", from),
				goerr.V("actual", action.Status),
			)
		}

		action.Status = to
		action.UpdatedAt = time.Now().UTC()
		result = action
		return tx.Set(docRef, action)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *actionRepository) Finalize(ctx context.Context, userID, id string, status types.ActionStatus, entityID, errorMessage string) (*model.Action, error) {
	if !status.IsTerminal() {
		return nil, goerr.New("finalize requires a terminal status", goerr.V("status", status))
	}

	docRef := r.client.Collection(r.collection()).Doc(id)

	var result *model.Action
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		action, err := r.decodeOwned(doc, err, userID, id)
		if err != nil {
			return err
		}

		if action.Status != types.ActionStatusExecuting {
			return goerr.Wrap(types.ErrInvalidState, "action not in expected state",
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
		result = action
		return tx.Set(docRef, action)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
