package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/repository/memory"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

func setupUseCases(t *testing.T) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	return usecase.New(repo), repo
}

func seedFirmSettings(t *testing.T, repo *memory.Memory, userID string) {
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

func proposeInvoiceAction(t *testing.T, repo *memory.Memory, userID string) *model.Action {
	t.Helper()
	action, err := repo.Action().Create(context.Background(), &model.Action{
		UserID:     userID,
		ActionType: types.ActionTypeCreateInvoice,
		ExtractedData: map[string]any{
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
		},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, action.Status).Equal(types.ActionStatusAwaitingConfirmation)
	return action
}

func TestExecuteActionCompletes(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)
	seedFirmSettings(t, repo, "u1")
	action := proposeInvoiceAction(t, repo, "u1")

	result := gt.R1(uc.Action.Execute(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, result.Success).Equal(true)
	gt.Value(t, result.EntityID).NotEqual("")

	stored := gt.R1(repo.Action().Get(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.ActionStatusCompleted)
	gt.Value(t, stored.EntityID).Equal(result.EntityID)
	gt.Value(t, stored.ExecutedAt).NotNil()

	// The invoice the executor created is owned by the same user
	invoice := gt.R1(repo.Invoice().Get(ctx, "u1", result.EntityID)).NoError(t)
	gt.Value(t, invoice.InvoiceNumber).Equal("INV-001")
}

func TestExecuteActionSecondConfirmationFails(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)
	seedFirmSettings(t, repo, "u1")
	action := proposeInvoiceAction(t, repo, "u1")

	gt.R1(uc.Action.Execute(ctx, "u1", action.ID)).NoError(t)

	_, err := uc.Action.Execute(ctx, "u1", action.ID)
	gt.Error(t, err).Is(types.ErrInvalidState)

	// The row stays terminal, and executed_at is untouched
	stored := gt.R1(repo.Action().Get(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.ActionStatusCompleted)
}

func TestExecuteActionUnknownTypeFinalizesFailed(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)

	action := gt.R1(repo.Action().Create(ctx, &model.Action{
		UserID:        "u1",
		ActionType:    types.ActionType("delete_everything"),
		ExtractedData: map[string]any{},
	})).NoError(t)

	_, err := uc.Action.Execute(ctx, "u1", action.ID)
	gt.Error(t, err).Is(types.ErrUnknownActionType)

	// Never left stuck in executing
	stored := gt.R1(repo.Action().Get(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.ActionStatusFailed)
	gt.Value(t, stored.ErrorMessage).NotEqual("")
	gt.Value(t, stored.ExecutedAt).NotNil()
}

func TestExecuteActionExecutorFailureFinalizesFailed(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)
	// No settings seeded, so the invoice executor fails
	action := proposeInvoiceAction(t, repo, "u1")

	result := gt.R1(uc.Action.Execute(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, result.Success).Equal(false)

	stored := gt.R1(repo.Action().Get(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.ActionStatusFailed)
	gt.Value(t, stored.ErrorMessage).NotEqual("")
}

func TestExecuteActionNotFound(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)
	action := proposeInvoiceAction(t, repo, "u1")

	// Another user cannot see, let alone execute, the action
	_, err := uc.Action.Execute(ctx, "u2", action.ID)
	gt.Error(t, err).Is(types.ErrNotFound)

	stored := gt.R1(repo.Action().Get(ctx, "u1", action.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.ActionStatusAwaitingConfirmation)
}
