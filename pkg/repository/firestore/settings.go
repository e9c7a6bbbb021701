package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type settingsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingsRepository(client *firestore.Client) *settingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) collection() string {
	return collectionName(r.collectionPrefix, "settings")
}

// Settings use the user ID as the document ID, one row per user
func (r *settingsRepository) ref(userID string) *firestore.DocumentRef {
	return r.client.Collection(r.collection()).Doc(userID)
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*model.Settings, error) {
	doc, err := r.ref(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "settings not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get settings", goerr.V("user_id", userID))
	}

	var settings model.Settings
	if err := doc.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode settings", goerr.V("user_id", userID))
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	saved := *settings
	saved.UpdatedAt = time.Now().UTC()

	if _, err := r.ref(saved.UserID).Set(ctx, &saved); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert settings", goerr.V("user_id", saved.UserID))
	}
	return &saved, nil
}

// IncrementInvoiceNumber reads and advances the counter in one
// transaction, which is what makes concurrent increments hand out
// distinct numbers.
func (r *settingsRepository) IncrementInvoiceNumber(ctx context.Context, userID string) (*model.InvoiceNumberState, error) {
	ref := r.ref(userID)

	var state model.InvoiceNumberState
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		settings := model.Settings{UserID: userID, InvoiceNextNumber: 1}
		doc, err := tx.Get(ref)
		if err != nil && !isNotFound(err) {
			return goerr.Wrap(err, "failed to get settings")
		}
		if err == nil {
			if err := doc.DataTo(&settings); err != nil {
				return goerr.Wrap(err, "failed to decode settings")
			}
			if settings.InvoiceNextNumber < 1 {
				settings.InvoiceNextNumber = 1
			}
		}

		state.CurrentNumber = settings.InvoiceNextNumber
		state.NextNumber = settings.InvoiceNextNumber + 1

		settings.UserID = userID
		settings.InvoiceNextNumber = state.NextNumber
		settings.UpdatedAt = time.Now().UTC()
		if err := tx.Set(ref, &settings); err != nil {
			return goerr.Wrap(err, "failed to update settings")
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to increment invoice number", goerr.V("user_id", userID))
	}
	return &state, nil
}

func (r *settingsRepository) SetInvoiceNumber(ctx context.Context, userID string, n int) (int, error) {
	if n < 1 {
		return 0, goerr.Wrap(types.ErrValidation, "invoice number must be at least 1", goerr.V("n", n))
	}
	ref := r.ref(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		settings := model.Settings{UserID: userID}
		doc, err := tx.Get(ref)
		if err != nil && !isNotFound(err) {
			return goerr.Wrap(err, "failed to get settings")
		}
		if err == nil {
			if err := doc.DataTo(&settings); err != nil {
				return goerr.Wrap(err, "failed to decode settings")
			}
		}

		settings.UserID = userID
		settings.InvoiceNextNumber = n
		settings.UpdatedAt = time.Now().UTC()
		if err := tx.Set(ref, &settings); err != nil {
			return goerr.Wrap(err, "failed to update settings")
		}
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to set invoice number", goerr.V("user_id", userID))
	}
	return n, nil
}
