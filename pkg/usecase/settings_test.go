package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

func TestInvoiceNumberFreshUserSeedsAtOne(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	state := gt.R1(uc.Settings.NextInvoiceNumber(ctx, "u1")).NoError(t)
	gt.Value(t, state.CurrentNumber).Equal(1)
	gt.Value(t, state.NextNumber).Equal(2)
}

func TestInvoiceNumberSetThenIncrement(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	n := gt.R1(uc.Settings.SetInvoiceNumber(ctx, "u1", 42)).NoError(t)
	gt.Value(t, n).Equal(42)

	state := gt.R1(uc.Settings.NextInvoiceNumber(ctx, "u1")).NoError(t)
	gt.Value(t, state.CurrentNumber).Equal(42)
	gt.Value(t, state.NextNumber).Equal(43)
}

func TestInvoiceNumberRejectsBelowOne(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	_, err := uc.Settings.SetInvoiceNumber(ctx, "u1", 0)
	gt.Error(t, err).Is(types.ErrValidation)
}

func TestSettingsMergeKeepsUnpatchedFields(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)
	seedFirmSettings(t, repo, "u1")

	merged := gt.R1(uc.Settings.Merge(ctx, "u1", &model.Settings{
		FirmPhone: "+91-9111111111",
	})).NoError(t)
	gt.Value(t, merged.FirmPhone).Equal("+91-9111111111")
	gt.Value(t, merged.FirmName).Equal("Mehta Jewellers")
	gt.Value(t, merged.FirmGSTIN).Equal("27AAAAA0000A1Z5")
}

func TestSettingsGetWithoutRowReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	settings := gt.R1(uc.Settings.Get(ctx, "u1")).NoError(t)
	gt.Value(t, settings.UserID).Equal("u1")
	gt.Value(t, settings.InvoiceNextNumber).Equal(1)
	gt.Value(t, settings.FirmName).Equal("")
}
