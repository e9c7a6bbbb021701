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

type stockRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStockRepository(client *firestore.Client) *stockRepository {
	return &stockRepository{client: client}
}

func (r *stockRepository) collection() string {
	return collectionName(r.collectionPrefix, "stock_items")
}

func (r *stockRepository) Create(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	now := time.Now().UTC()
	created := *item
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.IsSold = false
	created.SoldAt = nil
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create stock item", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *stockRepository) Get(ctx context.Context, userID, id string) (*model.StockItem, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get stock item", goerr.V("id", id))
	}
	return decodeStockItem(doc, userID)
}

func (r *stockRepository) List(ctx context.Context, userID string, sold *bool) ([]*model.StockItem, error) {
	query := r.client.Collection(r.collection()).
		Where("user_id", "==", userID)
	if sold != nil {
		query = query.Where("is_sold", "==", *sold)
	}
	iter := query.OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	items := make([]*model.StockItem, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list stock items", goerr.V("user_id", userID))
		}
		var item model.StockItem
		if err := doc.DataTo(&item); err != nil {
			return nil, goerr.Wrap(err, "failed to decode stock item", goerr.V("doc", doc.Ref.ID))
		}
		items = append(items, &item)
	}
	return items, nil
}

// Update rewrites descriptive fields inside a transaction, keeping the
// persisted sold state and created_at untouched
func (r *stockRepository) Update(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	ref := r.client.Collection(r.collection()).Doc(item.ID)

	var updated model.StockItem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", item.ID))
			}
			return goerr.Wrap(err, "failed to get stock item")
		}
		existing, err := decodeStockItem(doc, item.UserID)
		if err != nil {
			return err
		}

		updated = *item
		updated.IsSold = existing.IsSold
		updated.SoldAt = existing.SoldAt
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		if err := tx.Set(ref, &updated); err != nil {
			return goerr.Wrap(err, "failed to update stock item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *stockRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete stock item", goerr.V("id", id))
	}
	return nil
}

// SetSold flips the sold flag inside a transaction. The check of the
// current flag and the write commit atomically, so two concurrent
// mark_sold calls cannot both succeed.
func (r *stockRepository) SetSold(ctx context.Context, userID, id string, sold bool) (*model.StockItem, error) {
	ref := r.client.Collection(r.collection()).Doc(id)

	var updated model.StockItem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get stock item")
		}
		item, err := decodeStockItem(doc, userID)
		if err != nil {
			return err
		}
		if item.IsSold == sold {
			return goerr.Wrap(types.ErrInvalidState, "stock item already in requested sold state",
				goerr.V("id", id),
				goerr.V("is_sold", item.IsSold))
		}

		now := time.Now().UTC()
		item.IsSold = sold
		if sold {
			item.SoldAt = &now
		} else {
			item.SoldAt = nil
		}
		item.UpdatedAt = now

		if err := tx.Set(ref, item); err != nil {
			return goerr.Wrap(err, "failed to update stock item")
		}
		updated = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func decodeStockItem(doc *firestore.DocumentSnapshot, userID string) (*model.StockItem, error) {
	var item model.StockItem
	if err := doc.DataTo(&item); err != nil {
		return nil, goerr.Wrap(err, "failed to decode stock item", goerr.V("doc", doc.Ref.ID))
	}
	if item.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", doc.Ref.ID))
	}
	return &item, nil
}
