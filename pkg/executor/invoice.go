package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// invoiceActionData is the payload the AI agent extracts for a
// create_invoice action
type invoiceActionData struct {
	CustomerName    string              `json:"customerName" validate:"required"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	CustomerEmail   string              `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	CustomerID      string              `json:"customerId,omitempty"`
	InvoiceDate     string              `json:"invoiceDate,omitempty"`
	GSTPercentage   *float64            `json:"gstPercentage,omitempty" validate:"omitempty,min=0,max=100"`
	Items           []invoiceActionItem `json:"items" validate:"required,min=1,dive"`
	Subtotal        *float64            `json:"subtotal,omitempty"`
	GSTAmount       *float64            `json:"gstAmount,omitempty"`
	GrandTotal      *float64            `json:"grandTotal,omitempty"`
}

type invoiceActionItem struct {
	Name         string  `json:"name" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Weight       float64 `json:"weight" validate:"required,gt=0"`
	PricePerGram float64 `json:"pricePerGram" validate:"required,gt=0"`
	Total        float64 `json:"total" validate:"required,gt=0"`
}

// defaultGSTPercentage applies when the extracted data carries none
const defaultGSTPercentage = 3.0

// InvoiceExecutor creates a finalized sales invoice from confirmed AI
// action data: firm snapshot from settings, create-or-reuse customer, and
// an invoice number drawn atomically from the settings counter.
type InvoiceExecutor struct {
	repo     interfaces.Repository
	validate *validator.Validate
}

var _ Executor = &InvoiceExecutor{}

func NewInvoiceExecutor(repo interfaces.Repository) *InvoiceExecutor {
	return &InvoiceExecutor{
		repo:     repo,
		validate: validator.New(),
	}
}

func (x *InvoiceExecutor) Execute(ctx context.Context, data map[string]any, userID, actionID string) (*model.ActionResult, error) {
	logger := logging.From(ctx)

	parsed, err := x.parseData(data)
	if err != nil {
		return nil, err
	}

	// Firm details are snapshotted onto the invoice, so settings must exist
	settings, err := x.repo.Settings().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrValidation,
				"user settings not found, configure firm details in settings first")
		}
		return nil, err
	}

	customer, err := x.resolveCustomer(ctx, parsed, userID)
	if err != nil {
		return nil, err
	}

	numbers, err := x.repo.Settings().IncrementInvoiceNumber(ctx, userID)
	if err != nil {
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("INV-%03d", numbers.CurrentNumber)

	gstPct := defaultGSTPercentage
	if parsed.GSTPercentage != nil {
		gstPct = *parsed.GSTPercentage
	}
	subtotal, gstAmount, grandTotal := invoiceTotals(parsed, gstPct)

	invoiceDate := parsed.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = time.Now().UTC().Format("2006-01-02")
	}

	invoice := &model.Invoice{
		UserID:                  userID,
		CustomerID:              customer.ID,
		InvoiceNumber:           invoiceNumber,
		InvoiceDate:             invoiceDate,
		Status:                  model.InvoiceStatusFinalized,
		CustomerNameSnapshot:    customer.Name,
		CustomerAddressSnapshot: customer.Address,
		CustomerPhoneSnapshot:   customer.Phone,
		CustomerEmailSnapshot:   customer.Email,
		FirmNameSnapshot:        settings.FirmName,
		FirmAddressSnapshot:     settings.FirmAddress,
		FirmPhoneSnapshot:       settings.FirmPhone,
		FirmGSTINSnapshot:       settings.FirmGSTIN,
		Subtotal:                subtotal,
		GSTPercentage:           gstPct,
		GSTAmount:               gstAmount,
		GrandTotal:              grandTotal,
	}

	items := make([]*model.InvoiceItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, &model.InvoiceItem{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Weight:       it.Weight,
			PricePerGram: it.PricePerGram,
			Total:        it.Total,
		})
	}

	created, err := x.repo.Invoice().Create(ctx, invoice, items)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create invoice",
			goerr.V("action_id", actionID),
			goerr.V("invoice_number", invoiceNumber))
	}

	logger.Info("invoice created from confirmed action",
		"action_id", actionID,
		"invoice_id", created.ID,
		"invoice_number", invoiceNumber)

	return &model.ActionResult{
		Success:  true,
		EntityID: created.ID,
		Message:  fmt.Sprintf("Invoice %s created successfully", invoiceNumber),
	}, nil
}

func (x *InvoiceExecutor) parseData(data map[string]any) (*invoiceActionData, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(types.ErrValidation, "failed to encode action data")
	}
	var parsed invoiceActionData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, goerr.Wrap(types.ErrValidation, "malformed invoice action data", goerr.V("cause", err.Error()))
	}
	if err := x.validate.Struct(&parsed); err != nil {
		return nil, goerr.Wrap(types.ErrValidation, "invalid invoice action data", goerr.V("cause", err.Error()))
	}
	return &parsed, nil
}

func (x *InvoiceExecutor) resolveCustomer(ctx context.Context, data *invoiceActionData, userID string) (*model.Customer, error) {
	if data.CustomerID != "" {
		return x.repo.Customer().Get(ctx, userID, data.CustomerID)
	}
	return x.repo.Customer().Create(ctx, &model.Customer{
		UserID:  userID,
		Name:    data.CustomerName,
		Phone:   data.CustomerPhone,
		Email:   data.CustomerEmail,
		Address: data.CustomerAddress,
	})
}

// invoiceTotals uses the extracted totals when present, recomputing any
// that are missing from the item rows
func invoiceTotals(data *invoiceActionData, gstPct float64) (subtotal, gstAmount, grandTotal float64) {
	if data.Subtotal != nil {
		subtotal = *data.Subtotal
	} else {
		for _, it := range data.Items {
			subtotal += it.Total
		}
	}
	if data.GSTAmount != nil {
		gstAmount = *data.GSTAmount
	} else {
		gstAmount = subtotal * gstPct / 100
	}
	if data.GrandTotal != nil {
		grandTotal = *data.GrandTotal
	} else {
		grandTotal = subtotal + gstAmount
	}
	return subtotal, gstAmount, grandTotal
}
