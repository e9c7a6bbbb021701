package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

func TestPurchaseInvoiceDefaults(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	created, err := uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:        "u1",
		InvoiceNumber: "SUP-889",
		InvoiceDate:   "2026-08-10",
		Amount:        250000,
	})
	gt.NoError(t, err).Required()

	gt.Value(t, created.Status).Equal(model.PurchaseStatusReceived)
	gt.Value(t, created.PaymentStatus).Equal(model.PurchasePaymentStatusUnpaid)
	gt.Value(t, strings.HasPrefix(created.PurchaseNumber, "P-")).Equal(true)
	gt.Value(t, len(created.PurchaseNumber)).Equal(8)
}

func TestPurchaseInvoiceKeepsGivenNumber(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	created, err := uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:         "u1",
		PurchaseNumber: "P-000042",
		InvoiceNumber:  "SUP-890",
		InvoiceDate:    "2026-08-11",
		Amount:         1000,
		Status:         "Ordered",
		PaymentStatus:  "Paid",
	})
	gt.NoError(t, err).Required()

	gt.Value(t, created.PurchaseNumber).Equal("P-000042")
	gt.Value(t, created.Status).Equal("Ordered")
	gt.Value(t, created.PaymentStatus).Equal("Paid")
}

func TestPurchaseInvoiceValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	_, err := uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:      "u1",
		InvoiceDate: "2026-08-10",
		Amount:      1000,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:        "u1",
		InvoiceNumber: "SUP-891",
		Amount:        1000,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:        "u1",
		InvoiceNumber: "SUP-892",
		InvoiceDate:   "2026-08-10",
		Amount:        -1,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	negItems := -5
	_, err = uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:        "u1",
		InvoiceNumber: "SUP-893",
		InvoiceDate:   "2026-08-10",
		Amount:        1000,
		NumberOfItems: &negItems,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	// a zero amount is allowed, only negatives are rejected
	zeroAmount, err := uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:        "u1",
		InvoiceNumber: "SUP-894",
		InvoiceDate:   "2026-08-10",
		Amount:        0,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, zeroAmount.Amount).Equal(0.0)
}

func TestSupplierRequiresName(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	_, err := uc.Purchase.CreateSupplier(ctx, &model.Supplier{UserID: "u1"})
	gt.Error(t, err).Is(types.ErrValidation)

	created, err := uc.Purchase.CreateSupplier(ctx, &model.Supplier{
		UserID: "u1",
		Name:   "Ratanlal & Sons",
		Phone:  "+91-9812345678",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, created.Name).Equal("Ratanlal & Sons")

	found, err := uc.Purchase.ListSuppliers(ctx, "u1", "ratanlal")
	gt.NoError(t, err).Required()
	gt.A(t, found).Length(1)
}

func TestPurchaseListFilters(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	for _, inv := range []*model.PurchaseInvoice{
		{UserID: "u1", InvoiceNumber: "SUP-1", InvoiceDate: "2026-08-01", Amount: 100, PaymentStatus: "Paid"},
		{UserID: "u1", InvoiceNumber: "SUP-2", InvoiceDate: "2026-08-02", Amount: 200},
		{UserID: "u2", InvoiceNumber: "SUP-3", InvoiceDate: "2026-08-03", Amount: 300},
	} {
		_, err := uc.Purchase.CreateInvoice(ctx, inv)
		gt.NoError(t, err).Required()
	}

	all, err := uc.Purchase.ListInvoices(ctx, "u1", interfaces.ListPurchasesOptions{})
	gt.NoError(t, err).Required()
	gt.A(t, all).Length(2)

	paid, err := uc.Purchase.ListInvoices(ctx, "u1", interfaces.ListPurchasesOptions{PaymentStatus: "Paid"})
	gt.NoError(t, err).Required()
	gt.A(t, paid).Length(1)
	gt.Value(t, paid[0].InvoiceNumber).Equal("SUP-1")
}
