package shop

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/agent/tool"
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// proposeInvoiceTool files a create_invoice action in awaiting_confirmation
// state. The invoice itself is only created once the user confirms the
// action through the execute endpoint.
type proposeInvoiceTool struct {
	repo      interfaces.Repository
	userID    string
	sessionID string
	observer  func(actionID string)
}

func (t *proposeInvoiceTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "shop__propose_invoice",
		Description: "Propose creating a sales invoice from details mentioned in the conversation. " +
			"The user must confirm the proposal before the invoice is actually created, so always " +
			"call this once you have collected the customer name and at least one item.",
		Parameters: map[string]*gollem.Parameter{
			"customer_name": {
				Type:        gollem.TypeString,
				Description: "Name of the customer the invoice is for",
				Required:    true,
			},
			"customer_phone": {
				Type:        gollem.TypeString,
				Description: "Customer phone number, if mentioned",
			},
			"customer_id": {
				Type:        gollem.TypeString,
				Description: "ID of an existing customer, when one was found via search",
			},
			"invoice_date": {
				Type:        gollem.TypeString,
				Description: "Invoice date in YYYY-MM-DD format, defaults to today",
			},
			"gst_percentage": {
				Type:        gollem.TypeNumber,
				Description: "GST percentage to apply, defaults to 3",
			},
			"items": {
				Type:        gollem.TypeArray,
				Description: "Invoice line items",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"name":         {Type: gollem.TypeString, Description: "Item name", Required: true},
						"quantity":     {Type: gollem.TypeNumber, Description: "Quantity", Required: true},
						"weight":       {Type: gollem.TypeNumber, Description: "Weight in grams", Required: true},
						"pricePerGram": {Type: gollem.TypeNumber, Description: "Price per gram", Required: true},
						"total":        {Type: gollem.TypeNumber, Description: "Line total", Required: true},
					},
				},
			},
		},
	}
}

func (t *proposeInvoiceTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	customerName, err := extractString(args, "customer_name")
	if err != nil {
		return nil, err
	}
	tool.Update(ctx, "Preparing invoice proposal for "+customerName+"...")

	items, ok := args["items"].([]any)
	if !ok || len(items) == 0 {
		return nil, goerr.New("items must be a non-empty array")
	}

	data := map[string]any{
		"customerName": customerName,
		"items":        items,
	}
	if phone := optionalString(args, "customer_phone"); phone != "" {
		data["customerPhone"] = phone
	}
	if customerID := optionalString(args, "customer_id"); customerID != "" {
		data["customerId"] = customerID
	}
	if date := optionalString(args, "invoice_date"); date != "" {
		data["invoiceDate"] = date
	}
	if pct, ok := args["gst_percentage"].(float64); ok {
		data["gstPercentage"] = pct
	}

	action, err := t.repo.Action().Create(ctx, &model.Action{
		UserID:        t.userID,
		ActionType:    types.ActionTypeCreateInvoice,
		ExtractedData: data,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create invoice proposal",
			goerr.V("session_id", t.sessionID))
	}

	if t.observer != nil {
		t.observer(action.ID)
	}

	return map[string]any{
		"action_id": action.ID,
		"status":    action.Status.String(),
		"note":      "Proposal recorded. Ask the user to confirm before the invoice is created.",
	}, nil
}
