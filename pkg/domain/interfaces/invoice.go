package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// ListInvoicesOptions filters and paginates an invoice listing
type ListInvoicesOptions struct {
	// Search matches customer name snapshot or invoice number substring
	Search   string
	DateFrom string
	DateTo   string
	Status   string
	Offset   int
	Limit    int
}

// InvoiceRepository defines data access for sales invoices and their items.
// Create and Update write the invoice and all item rows together; Update
// replaces the full item set. Delete removes the invoice and its items.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error)
	Get(ctx context.Context, userID, id string) (*model.Invoice, error)
	GetItems(ctx context.Context, userID, invoiceID string) ([]*model.InvoiceItem, error)
	// List returns one page of invoices, newest invoice_date first, plus the
	// total matching count
	List(ctx context.Context, userID string, opt ListInvoicesOptions) ([]*model.Invoice, int, error)
	Update(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error)
	Delete(ctx context.Context, userID, id string) error
}
