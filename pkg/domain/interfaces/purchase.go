package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// ListPurchasesOptions filters a purchase invoice listing
type ListPurchasesOptions struct {
	// Search matches purchase_number or invoice_number substring
	Search        string
	Status        string
	PaymentStatus string
}

// PurchaseRepository defines data access for purchase invoices
type PurchaseRepository interface {
	Create(ctx context.Context, invoice *model.PurchaseInvoice) (*model.PurchaseInvoice, error)
	Get(ctx context.Context, userID, id string) (*model.PurchaseInvoice, error)
	List(ctx context.Context, userID string, opt ListPurchasesOptions) ([]*model.PurchaseInvoice, error)
}

// SupplierRepository defines data access for suppliers
type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error)
	Get(ctx context.Context, userID, id string) (*model.Supplier, error)
	List(ctx context.Context, userID string, search string) ([]*model.Supplier, error)
	Update(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error)
	Delete(ctx context.Context, userID, id string) error
}
