package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// PurchaseUseCase handles purchase invoices and suppliers
type PurchaseUseCase struct {
	repo interfaces.Repository
}

func NewPurchaseUseCase(repo interfaces.Repository) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo}
}

func (uc *PurchaseUseCase) CreateInvoice(ctx context.Context, invoice *model.PurchaseInvoice) (*model.PurchaseInvoice, error) {
	if strings.TrimSpace(invoice.PurchaseNumber) == "" {
		invoice.PurchaseNumber = fmt.Sprintf("P-%06d", rand.IntN(1000000))
	}
	if strings.TrimSpace(invoice.InvoiceNumber) == "" {
		return nil, goerr.Wrap(types.ErrValidation, "invoice_number is required")
	}
	if strings.TrimSpace(invoice.InvoiceDate) == "" {
		return nil, goerr.Wrap(types.ErrValidation, "invoice_date is required")
	}
	if invoice.Amount < 0 {
		return nil, goerr.Wrap(types.ErrValidation, "amount must not be negative")
	}
	if invoice.NumberOfItems != nil && *invoice.NumberOfItems < 0 {
		return nil, goerr.Wrap(types.ErrValidation, "number_of_items must not be negative")
	}
	if invoice.Status == "" {
		invoice.Status = model.PurchaseStatusReceived
	}
	if invoice.PaymentStatus == "" {
		invoice.PaymentStatus = model.PurchasePaymentStatusUnpaid
	}
	return uc.repo.Purchase().Create(ctx, invoice)
}

func (uc *PurchaseUseCase) GetInvoice(ctx context.Context, userID, id string) (*model.PurchaseInvoice, error) {
	return uc.repo.Purchase().Get(ctx, userID, id)
}

func (uc *PurchaseUseCase) ListInvoices(ctx context.Context, userID string, opt interfaces.ListPurchasesOptions) ([]*model.PurchaseInvoice, error) {
	return uc.repo.Purchase().List(ctx, userID, opt)
}

func (uc *PurchaseUseCase) CreateSupplier(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, goerr.Wrap(types.ErrValidation, "supplier name is required")
	}
	return uc.repo.Supplier().Create(ctx, supplier)
}

func (uc *PurchaseUseCase) UpdateSupplier(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, goerr.Wrap(types.ErrValidation, "supplier name is required")
	}
	return uc.repo.Supplier().Update(ctx, supplier)
}

func (uc *PurchaseUseCase) DeleteSupplier(ctx context.Context, userID, id string) error {
	return uc.repo.Supplier().Delete(ctx, userID, id)
}

func (uc *PurchaseUseCase) GetSupplier(ctx context.Context, userID, id string) (*model.Supplier, error) {
	return uc.repo.Supplier().Get(ctx, userID, id)
}

func (uc *PurchaseUseCase) ListSuppliers(ctx context.Context, userID, search string) ([]*model.Supplier, error) {
	return uc.repo.Supplier().List(ctx, userID, search)
}
