package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

func createStockItem(t *testing.T, uc *usecase.StockUseCase) *model.StockItem {
	t.Helper()
	item, err := uc.Create(context.Background(), &model.StockItem{
		UserID:        "u1",
		ItemNumber:    "R-1",
		Category:      "Ring",
		Material:      "Gold",
		Weight:        10,
		PurchasePrice: 5000,
	})
	gt.NoError(t, err).Required()
	return item
}

func TestStockCreateStartsUnsold(t *testing.T) {
	uc, _ := setupUseCases(t)
	item := createStockItem(t, uc.Stock)

	gt.Value(t, item.IsSold).Equal(false)
	gt.Value(t, item.SoldAt).Nil()
	gt.Value(t, item.Weight).Equal(10.0)
}

func TestStockMarkSoldRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	item := createStockItem(t, uc.Stock)

	sold := gt.R1(uc.Stock.Apply(ctx, "u1", item.ID, types.StockActionMarkSold)).NoError(t)
	gt.Value(t, sold.IsSold).Equal(true)
	gt.Value(t, sold.SoldAt).NotNil()

	unsold := gt.R1(uc.Stock.Apply(ctx, "u1", item.ID, types.StockActionMarkUnsold)).NoError(t)
	gt.Value(t, unsold.IsSold).Equal(false)
	gt.Value(t, unsold.SoldAt).Nil()
}

func TestStockDuplicateTransitionRejected(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	item := createStockItem(t, uc.Stock)

	_, err := uc.Stock.Apply(ctx, "u1", item.ID, types.StockActionMarkUnsold)
	gt.Error(t, err).Is(types.ErrInvalidState)

	gt.R1(uc.Stock.Apply(ctx, "u1", item.ID, types.StockActionMarkSold)).NoError(t)
	_, err = uc.Stock.Apply(ctx, "u1", item.ID, types.StockActionMarkSold)
	gt.Error(t, err).Is(types.ErrInvalidState)
}

func TestStockListSoldFilter(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)
	first := createStockItem(t, uc.Stock)
	second, err := uc.Stock.Create(ctx, &model.StockItem{
		UserID:        "u1",
		ItemNumber:    "N-1",
		Category:      "Necklace",
		Material:      "Silver",
		Weight:        30,
		PurchasePrice: 2000,
	})
	gt.NoError(t, err).Required()

	gt.R1(uc.Stock.Apply(ctx, "u1", first.ID, types.StockActionMarkSold)).NoError(t)

	soldOnly := true
	sold := gt.R1(uc.Stock.List(ctx, "u1", &soldOnly)).NoError(t)
	gt.A(t, sold).Length(1)
	gt.Value(t, sold[0].ID).Equal(first.ID)

	unsoldOnly := false
	unsold := gt.R1(uc.Stock.List(ctx, "u1", &unsoldOnly)).NoError(t)
	gt.A(t, unsold).Length(1)
	gt.Value(t, unsold[0].ID).Equal(second.ID)

	all := gt.R1(uc.Stock.List(ctx, "u1", nil)).NoError(t)
	gt.A(t, all).Length(2)
}

func TestStockCreateValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	_, err := uc.Stock.Create(ctx, &model.StockItem{
		UserID:   "u1",
		Category: "Ring",
		Material: "Gold",
		Weight:   10,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Stock.Create(ctx, &model.StockItem{
		UserID:     "u1",
		ItemNumber: "R-1",
		Category:   "Ring",
		Material:   "Gold",
		Weight:     -1,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Stock.Create(ctx, &model.StockItem{
		UserID:        "u1",
		ItemNumber:    "R-1",
		Category:      "Ring",
		Material:      "Gold",
		Weight:        10,
		PurchasePrice: -500,
	})
	gt.Error(t, err).Is(types.ErrValidation)
}

func TestStockCreateAcceptsZeroValues(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	// gifted or unvalued pieces carry zero weight or price
	item, err := uc.Stock.Create(ctx, &model.StockItem{
		UserID:        "u1",
		ItemNumber:    "G-1",
		Category:      "Pendant",
		Material:      "Silver",
		Weight:        0,
		PurchasePrice: 0,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, item.Weight).Equal(0.0)
	gt.Value(t, item.PurchasePrice).Equal(0.0)
}
