package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// StockRepository defines data access for stock items.
//
// SetSold is conditional: it succeeds only when the persisted is_sold flag
// differs from the requested one, so repeated mark_sold calls (or a
// concurrent race) fail with types.ErrInvalidState instead of silently
// rewriting sold_at.
type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) (*model.StockItem, error)
	Get(ctx context.Context, userID, id string) (*model.StockItem, error)
	// List returns stock items, newest first. sold filters by the is_sold
	// flag when non-nil.
	List(ctx context.Context, userID string, sold *bool) ([]*model.StockItem, error)
	SetSold(ctx context.Context, userID, id string, sold bool) (*model.StockItem, error)
	// Update rewrites the descriptive fields; the sold state only changes
	// through SetSold
	Update(ctx context.Context, item *model.StockItem) (*model.StockItem, error)
	Delete(ctx context.Context, userID, id string) error
}
