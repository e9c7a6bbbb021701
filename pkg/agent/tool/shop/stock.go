package shop

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/agent/tool"
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// listStockTool lets the assistant answer questions about current inventory
type listStockTool struct {
	repo   interfaces.Repository
	userID string
}

func (t *listStockTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "shop__list_stock",
		Description: "List the shop's stock items, optionally filtered to sold or unsold pieces",
		Parameters: map[string]*gollem.Parameter{
			"sold": {
				Type:        gollem.TypeBoolean,
				Description: "When set, return only sold (true) or unsold (false) items",
			},
		},
	}
}

func (t *listStockTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Listing stock items...")

	var sold *bool
	if raw, ok := args["sold"].(bool); ok {
		sold = &raw
	}

	stock, err := t.repo.Stock().List(ctx, t.userID, sold)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list stock items")
	}

	items := make([]map[string]any, len(stock))
	for i, s := range stock {
		items[i] = map[string]any{
			"id":             s.ID,
			"item_number":    s.ItemNumber,
			"category":       s.Category,
			"material":       s.Material,
			"weight":         s.Weight,
			"purchase_price": s.PurchasePrice,
			"is_sold":        s.IsSold,
		}
	}
	return map[string]any{"stock_items": items}, nil
}
