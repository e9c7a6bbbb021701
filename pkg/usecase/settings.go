package usecase

import (
	"context"
	"errors"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// SettingsUseCase handles the per-user firm settings and the invoice
// number counter
type SettingsUseCase struct {
	repo interfaces.Repository
}

func NewSettingsUseCase(repo interfaces.Repository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get returns the user's settings, or an empty row when none exist yet
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*model.Settings, error) {
	settings, err := uc.repo.Settings().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return &model.Settings{UserID: userID, InvoiceNextNumber: 1}, nil
		}
		return nil, err
	}
	return settings, nil
}

// Replace overwrites the user's settings with the given row
func (uc *SettingsUseCase) Replace(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	return uc.repo.Settings().Upsert(ctx, settings)
}

// Merge applies only the non-zero fields of patch onto the stored settings
func (uc *SettingsUseCase) Merge(ctx context.Context, userID string, patch *model.Settings) (*model.Settings, error) {
	current, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FirmName != "" {
		current.FirmName = patch.FirmName
	}
	if patch.FirmAddress != "" {
		current.FirmAddress = patch.FirmAddress
	}
	if patch.FirmPhone != "" {
		current.FirmPhone = patch.FirmPhone
	}
	if patch.FirmGSTIN != "" {
		current.FirmGSTIN = patch.FirmGSTIN
	}
	if patch.InvoiceNextNumber > 0 {
		current.InvoiceNextNumber = patch.InvoiceNextNumber
	}
	if patch.DefaultGSTPercentage > 0 {
		current.DefaultGSTPercentage = patch.DefaultGSTPercentage
	}

	current.UserID = userID
	return uc.repo.Settings().Upsert(ctx, current)
}

// NextInvoiceNumber atomically draws the next invoice number
func (uc *SettingsUseCase) NextInvoiceNumber(ctx context.Context, userID string) (*model.InvoiceNumberState, error) {
	return uc.repo.Settings().IncrementInvoiceNumber(ctx, userID)
}

// SetInvoiceNumber sets the counter to n (must be >= 1)
func (uc *SettingsUseCase) SetInvoiceNumber(ctx context.Context, userID string, n int) (int, error) {
	return uc.repo.Settings().SetInvoiceNumber(ctx, userID, n)
}
