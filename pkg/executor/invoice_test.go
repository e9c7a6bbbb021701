package executor_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/executor"
	"github.com/gemledger-lab/gemledger/pkg/repository/memory"
)

func validInvoiceData() map[string]any {
	return map[string]any{
		"customerName": "Asha Mehta",
		"items": []any{
			map[string]any{
				"name":         "gold ring",
				"quantity":     1.0,
				"weight":       10.0,
				"pricePerGram": 6000.0,
				"total":        60000.0,
			},
		},
	}
}

func seedSettings(t *testing.T, repo *memory.Memory, userID string) {
	t.Helper()
	_, err := repo.Settings().Upsert(context.Background(), &model.Settings{
		UserID:            userID,
		FirmName:          "Mehta Jewellers",
		FirmAddress:       "12 MG Road",
		FirmPhone:         "+91-9000000000",
		FirmGSTIN:         "27AAAAA0000A1Z5",
		InvoiceNextNumber: 1,
	})
	gt.NoError(t, err).Required()
}

func TestInvoiceExecutorCreatesInvoice(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedSettings(t, repo, "u1")

	x := executor.NewInvoiceExecutor(repo)
	result := gt.R1(x.Execute(ctx, validInvoiceData(), "u1", "a1")).NoError(t)

	gt.Value(t, result.Success).Equal(true)
	gt.Value(t, result.EntityID).NotEqual("")

	invoice := gt.R1(repo.Invoice().Get(ctx, "u1", result.EntityID)).NoError(t)
	gt.Value(t, invoice.InvoiceNumber).Equal("INV-001")
	gt.Value(t, invoice.Status).Equal(model.InvoiceStatusFinalized)
	gt.Value(t, invoice.FirmNameSnapshot).Equal("Mehta Jewellers")
	gt.Value(t, invoice.CustomerNameSnapshot).Equal("Asha Mehta")
	gt.Value(t, invoice.Subtotal).Equal(60000.0)
	gt.Value(t, invoice.GSTAmount).Equal(1800.0)
	gt.Value(t, invoice.GrandTotal).Equal(61800.0)

	items := gt.R1(repo.Invoice().GetItems(ctx, "u1", result.EntityID)).NoError(t)
	gt.A(t, items).Length(1)

	// The new customer was persisted and linked
	customers := gt.R1(repo.Customer().List(ctx, "u1", interfaces.ListCustomersOptions{})).NoError(t)
	gt.A(t, customers).Length(1)
	gt.Value(t, invoice.CustomerID).Equal(customers[0].ID)
}

func TestInvoiceExecutorNumbersAreSequential(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedSettings(t, repo, "u1")

	x := executor.NewInvoiceExecutor(repo)
	first := gt.R1(x.Execute(ctx, validInvoiceData(), "u1", "a1")).NoError(t)
	second := gt.R1(x.Execute(ctx, validInvoiceData(), "u1", "a2")).NoError(t)

	inv1 := gt.R1(repo.Invoice().Get(ctx, "u1", first.EntityID)).NoError(t)
	inv2 := gt.R1(repo.Invoice().Get(ctx, "u1", second.EntityID)).NoError(t)
	gt.Value(t, inv1.InvoiceNumber).Equal("INV-001")
	gt.Value(t, inv2.InvoiceNumber).Equal("INV-002")
}

func TestInvoiceExecutorReusesExistingCustomer(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedSettings(t, repo, "u1")

	existing := gt.R1(repo.Customer().Create(ctx, &model.Customer{
		UserID:  "u1",
		Name:    "Ravi Kumar",
		Address: "4 Park Street",
	})).NoError(t)

	data := validInvoiceData()
	data["customerId"] = existing.ID
	data["customerName"] = "ignored when customerId is set"

	x := executor.NewInvoiceExecutor(repo)
	result := gt.R1(x.Execute(ctx, data, "u1", "a1")).NoError(t)

	invoice := gt.R1(repo.Invoice().Get(ctx, "u1", result.EntityID)).NoError(t)
	gt.Value(t, invoice.CustomerID).Equal(existing.ID)
	gt.Value(t, invoice.CustomerNameSnapshot).Equal("Ravi Kumar")

	customers := gt.R1(repo.Customer().List(ctx, "u1", interfaces.ListCustomersOptions{})).NoError(t)
	gt.A(t, customers).Length(1)
}

func TestInvoiceExecutorRequiresSettings(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	x := executor.NewInvoiceExecutor(repo)
	_, err := x.Execute(ctx, validInvoiceData(), "u1", "a1")
	gt.Error(t, err).Is(types.ErrValidation)
}

func TestInvoiceExecutorRejectsEmptyItems(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedSettings(t, repo, "u1")

	data := validInvoiceData()
	data["items"] = []any{}

	x := executor.NewInvoiceExecutor(repo)
	_, err := x.Execute(ctx, data, "u1", "a1")
	gt.Error(t, err).Is(types.ErrValidation)
}

func TestRegistryUnknownType(t *testing.T) {
	reg := executor.NewRegistry()
	_, err := reg.Dispatch(context.Background(), types.ActionType("unknown"), nil, "u1", "a1")
	gt.Error(t, err).Is(types.ErrUnknownActionType)
}
