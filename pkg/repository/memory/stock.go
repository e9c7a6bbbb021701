package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type stockRepository struct {
	mu    sync.RWMutex
	items map[string]*model.StockItem
}

func newStockRepository() *stockRepository {
	return &stockRepository{
		items: make(map[string]*model.StockItem),
	}
}

func copyStockItem(s *model.StockItem) *model.StockItem {
	c := *s
	if s.ImageURLs != nil {
		c.ImageURLs = make([]string, len(s.ImageURLs))
		copy(c.ImageURLs, s.ImageURLs)
	}
	if s.SoldAt != nil {
		t := *s.SoldAt
		c.SoldAt = &t
	}
	return &c
}

func (r *stockRepository) Create(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyStockItem(item)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.items[created.ID] = created
	return copyStockItem(created), nil
}

func (r *stockRepository) Get(ctx context.Context, userID, id string) (*model.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists || item.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", id))
	}
	return copyStockItem(item), nil
}

func (r *stockRepository) List(ctx context.Context, userID string, sold *bool) ([]*model.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.StockItem, 0)
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if sold != nil && item.IsSold != *sold {
			continue
		}
		items = append(items, copyStockItem(item))
	}
	sortByCreatedAtDesc(items, func(s *model.StockItem) time.Time { return s.CreatedAt })
	return items, nil
}

func (r *stockRepository) Update(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists || existing.UserID != item.UserID {
		return nil, goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", item.ID))
	}

	updated := copyStockItem(item)
	updated.IsSold = existing.IsSold
	updated.SoldAt = existing.SoldAt
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.items[updated.ID] = updated
	return copyStockItem(updated), nil
}

func (r *stockRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[id]
	if !exists || existing.UserID != userID {
		return goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", id))
	}

	delete(r.items, id)
	return nil
}

func (r *stockRepository) SetSold(ctx context.Context, userID, id string, sold bool) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "stock item not found", goerr.V("id", id))
	}

	if item.IsSold == sold {
		return nil, goerr.Wrap(types.ErrInvalidState, "stock item already in requested state",
			goerr.V("id", id),
			goerr.V("is_sold", item.IsSold),
		)
	}

	now := time.Now().UTC()
	item.IsSold = sold
	if sold {
		item.SoldAt = &now
	} else {
		item.SoldAt = nil
	}
	item.UpdatedAt = now
	return copyStockItem(item), nil
}
