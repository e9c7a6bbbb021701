package shop

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/agent/tool"
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// searchCustomersTool looks up existing customers so the assistant can
// reuse them in invoice proposals instead of creating duplicates
type searchCustomersTool struct {
	repo   interfaces.Repository
	userID string
}

func (t *searchCustomersTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "shop__search_customers",
		Description: "Search the shop's customers by name. Use this before proposing an invoice to reuse an existing customer record.",
		Parameters: map[string]*gollem.Parameter{
			"name": {
				Type:        gollem.TypeString,
				Description: "Full or partial customer name to search for",
				Required:    true,
			},
		},
	}
}

func (t *searchCustomersTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	name, err := extractString(args, "name")
	if err != nil {
		return nil, err
	}
	tool.Update(ctx, "Searching customers for "+name+"...")

	customers, err := t.repo.Customer().List(ctx, t.userID, interfaces.ListCustomersOptions{Search: name})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search customers", goerr.V("search", name))
	}

	items := make([]map[string]any, len(customers))
	for i, c := range customers {
		items[i] = map[string]any{
			"id":      c.ID,
			"name":    c.Name,
			"phone":   c.Phone,
			"email":   c.Email,
			"address": c.Address,
		}
	}
	return map[string]any{"customers": items}, nil
}
