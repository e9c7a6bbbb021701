package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// maxInvoicePageSize caps the page size of invoice listings
const maxInvoicePageSize = 100

// InvoiceUseCase handles sales invoices
type InvoiceUseCase struct {
	repo interfaces.Repository
}

func NewInvoiceUseCase(repo interfaces.Repository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

// InvoiceWithItems is an invoice together with its line items
type InvoiceWithItems struct {
	model.Invoice
	Items []*model.InvoiceItem `json:"items"`
}

func (uc *InvoiceUseCase) Create(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	if err := validateInvoice(invoice, items); err != nil {
		return nil, err
	}
	return uc.repo.Invoice().Create(ctx, invoice, items)
}

// Update replaces the invoice and its full item set
func (uc *InvoiceUseCase) Update(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	if err := validateInvoice(invoice, items); err != nil {
		return nil, err
	}
	return uc.repo.Invoice().Update(ctx, invoice, items)
}

func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Invoice().Delete(ctx, userID, id)
}

func validateInvoice(invoice *model.Invoice, items []*model.InvoiceItem) error {
	if strings.TrimSpace(invoice.InvoiceNumber) == "" {
		return goerr.Wrap(types.ErrValidation, "invoice_number is required")
	}
	if strings.TrimSpace(invoice.CustomerNameSnapshot) == "" {
		return goerr.Wrap(types.ErrValidation, "customer name is required")
	}
	if len(items) == 0 {
		return goerr.Wrap(types.ErrValidation, "at least one invoice item is required")
	}
	return nil
}

func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*InvoiceWithItems, error) {
	invoice, err := uc.repo.Invoice().Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.Invoice().GetItems(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

func (uc *InvoiceUseCase) List(ctx context.Context, userID string, opt interfaces.ListInvoicesOptions) ([]*model.Invoice, int, error) {
	if opt.Limit <= 0 || opt.Limit > maxInvoicePageSize {
		opt.Limit = maxInvoicePageSize
	}
	if opt.Offset < 0 {
		opt.Offset = 0
	}
	return uc.repo.Invoice().List(ctx, userID, opt)
}
