package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type invoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*model.Invoice
	items    map[string][]*model.InvoiceItem
}

func newInvoiceRepository() *invoiceRepository {
	return &invoiceRepository{
		invoices: make(map[string]*model.Invoice),
		items:    make(map[string][]*model.InvoiceItem),
	}
}

func copyInvoice(inv *model.Invoice) *model.Invoice {
	c := *inv
	return &c
}

func copyInvoiceItem(it *model.InvoiceItem) *model.InvoiceItem {
	c := *it
	return &c
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyInvoice(invoice)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	rows := make([]*model.InvoiceItem, 0, len(items))
	for _, it := range items {
		row := copyInvoiceItem(it)
		row.ID = uuid.Must(uuid.NewV7()).String()
		row.InvoiceID = created.ID
		row.UserID = created.UserID
		row.CreatedAt = now
		rows = append(rows, row)
	}

	r.invoices[created.ID] = created
	r.items[created.ID] = rows
	return copyInvoice(created), nil
}

func (r *invoiceRepository) Get(ctx context.Context, userID, id string) (*model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, exists := r.invoices[id]
	if !exists || inv.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
	}
	return copyInvoice(inv), nil
}

func (r *invoiceRepository) GetItems(ctx context.Context, userID, invoiceID string) ([]*model.InvoiceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, exists := r.invoices[invoiceID]
	if !exists || inv.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", invoiceID))
	}

	items := make([]*model.InvoiceItem, 0, len(r.items[invoiceID]))
	for _, it := range r.items[invoiceID] {
		items = append(items, copyInvoiceItem(it))
	}
	return items, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.invoices[invoice.ID]
	if !exists || existing.UserID != invoice.UserID {
		return nil, goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", invoice.ID))
	}

	now := time.Now().UTC()
	updated := copyInvoice(invoice)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now

	rows := make([]*model.InvoiceItem, 0, len(items))
	for _, it := range items {
		row := copyInvoiceItem(it)
		row.ID = uuid.Must(uuid.NewV7()).String()
		row.InvoiceID = updated.ID
		row.UserID = updated.UserID
		row.CreatedAt = now
		rows = append(rows, row)
	}

	r.invoices[updated.ID] = updated
	r.items[updated.ID] = rows
	return copyInvoice(updated), nil
}

func (r *invoiceRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.invoices[id]
	if !exists || existing.UserID != userID {
		return goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
	}

	delete(r.invoices, id)
	delete(r.items, id)
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, userID string, opt interfaces.ListInvoicesOptions) ([]*model.Invoice, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if opt.Search != "" &&
			!containsFold(inv.CustomerNameSnapshot, opt.Search) &&
			!containsFold(inv.InvoiceNumber, opt.Search) {
			continue
		}
		if opt.DateFrom != "" && inv.InvoiceDate < opt.DateFrom {
			continue
		}
		if opt.DateTo != "" && inv.InvoiceDate > opt.DateTo {
			continue
		}
		if opt.Status != "" && inv.Status != opt.Status {
			continue
		}
		matched = append(matched, copyInvoice(inv))
	}

	sortByCreatedAtDesc(matched, func(inv *model.Invoice) time.Time { return inv.CreatedAt })
	total := len(matched)

	if opt.Offset > len(matched) {
		return []*model.Invoice{}, total, nil
	}
	matched = matched[opt.Offset:]
	if opt.Limit > 0 && opt.Limit < len(matched) {
		matched = matched[:opt.Limit]
	}
	return matched, total, nil
}
