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

type purchaseRepository struct {
	mu       sync.RWMutex
	invoices map[string]*model.PurchaseInvoice
}

func newPurchaseRepository() *purchaseRepository {
	return &purchaseRepository{
		invoices: make(map[string]*model.PurchaseInvoice),
	}
}

func copyPurchaseInvoice(p *model.PurchaseInvoice) *model.PurchaseInvoice {
	c := *p
	if p.NumberOfItems != nil {
		n := *p.NumberOfItems
		c.NumberOfItems = &n
	}
	return &c
}

func (r *purchaseRepository) Create(ctx context.Context, invoice *model.PurchaseInvoice) (*model.PurchaseInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyPurchaseInvoice(invoice)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.invoices[created.ID] = created
	return copyPurchaseInvoice(created), nil
}

func (r *purchaseRepository) Get(ctx context.Context, userID, id string) (*model.PurchaseInvoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, exists := r.invoices[id]
	if !exists || inv.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "purchase invoice not found", goerr.V("id", id))
	}
	return copyPurchaseInvoice(inv), nil
}

func (r *purchaseRepository) List(ctx context.Context, userID string, opt interfaces.ListPurchasesOptions) ([]*model.PurchaseInvoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoices := make([]*model.PurchaseInvoice, 0)
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if opt.Search != "" &&
			!containsFold(inv.PurchaseNumber, opt.Search) &&
			!containsFold(inv.InvoiceNumber, opt.Search) {
			continue
		}
		if opt.Status != "" && inv.Status != opt.Status {
			continue
		}
		if opt.PaymentStatus != "" && inv.PaymentStatus != opt.PaymentStatus {
			continue
		}
		invoices = append(invoices, copyPurchaseInvoice(inv))
	}
	sortByCreatedAtDesc(invoices, func(inv *model.PurchaseInvoice) time.Time { return inv.CreatedAt })
	return invoices, nil
}

type supplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*model.Supplier
}

func newSupplierRepository() *supplierRepository {
	return &supplierRepository{
		suppliers: make(map[string]*model.Supplier),
	}
}

func copySupplier(s *model.Supplier) *model.Supplier {
	c := *s
	return &c
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copySupplier(supplier)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.suppliers[created.ID] = created
	return copySupplier(created), nil
}

func (r *supplierRepository) Get(ctx context.Context, userID, id string) (*model.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.suppliers[id]
	if !exists || s.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "supplier not found", goerr.V("id", id))
	}
	return copySupplier(s), nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.suppliers[supplier.ID]
	if !exists || existing.UserID != supplier.UserID {
		return nil, goerr.Wrap(types.ErrNotFound, "supplier not found", goerr.V("id", supplier.ID))
	}

	updated := copySupplier(supplier)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.suppliers[updated.ID] = updated
	return copySupplier(updated), nil
}

func (r *supplierRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.suppliers[id]
	if !exists || existing.UserID != userID {
		return goerr.Wrap(types.ErrNotFound, "supplier not found", goerr.V("id", id))
	}

	delete(r.suppliers, id)
	return nil
}

func (r *supplierRepository) List(ctx context.Context, userID string, search string) ([]*model.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suppliers := make([]*model.Supplier, 0)
	for _, s := range r.suppliers {
		if s.UserID != userID {
			continue
		}
		if search != "" && !containsFold(s.Name, search) {
			continue
		}
		suppliers = append(suppliers, copySupplier(s))
	}
	sortByCreatedAtDesc(suppliers, func(s *model.Supplier) time.Time { return s.CreatedAt })
	return suppliers, nil
}
