package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// StockUseCase handles inventory items and their sold transitions
type StockUseCase struct {
	repo interfaces.Repository
}

func NewStockUseCase(repo interfaces.Repository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

func (uc *StockUseCase) Create(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	if err := validateStockItem(item); err != nil {
		return nil, err
	}
	return uc.repo.Stock().Create(ctx, item)
}

// Update rewrites descriptive fields; the sold state is untouched and only
// changes through Apply
func (uc *StockUseCase) Update(ctx context.Context, item *model.StockItem) (*model.StockItem, error) {
	if err := validateStockItem(item); err != nil {
		return nil, err
	}
	return uc.repo.Stock().Update(ctx, item)
}

func (uc *StockUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Stock().Delete(ctx, userID, id)
}

func validateStockItem(item *model.StockItem) error {
	if strings.TrimSpace(item.ItemNumber) == "" {
		return goerr.Wrap(types.ErrValidation, "item_number is required")
	}
	if strings.TrimSpace(item.Category) == "" {
		return goerr.Wrap(types.ErrValidation, "category is required")
	}
	if strings.TrimSpace(item.Material) == "" {
		return goerr.Wrap(types.ErrValidation, "material is required")
	}
	if item.Weight < 0 {
		return goerr.Wrap(types.ErrValidation, "weight must not be negative")
	}
	if item.PurchasePrice < 0 {
		return goerr.Wrap(types.ErrValidation, "purchase_price must not be negative")
	}
	return nil
}

func (uc *StockUseCase) Get(ctx context.Context, userID, id string) (*model.StockItem, error) {
	return uc.repo.Stock().Get(ctx, userID, id)
}

func (uc *StockUseCase) List(ctx context.Context, userID string, sold *bool) ([]*model.StockItem, error) {
	return uc.repo.Stock().List(ctx, userID, sold)
}

// Apply runs a mark_sold or mark_unsold transition. A transition that
// would not change the flag is rejected by the repository's conditional
// update.
func (uc *StockUseCase) Apply(ctx context.Context, userID, id string, action types.StockAction) (*model.StockItem, error) {
	return uc.repo.Stock().SetSold(ctx, userID, id, action == types.StockActionMarkSold)
}
