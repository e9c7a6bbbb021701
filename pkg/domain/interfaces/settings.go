package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// SettingsRepository defines data access for per-user settings.
//
// IncrementInvoiceNumber and SetInvoiceNumber are atomic: the counter read
// and write happen in one repository-level transaction, so two concurrent
// increments can never hand out the same number.
type SettingsRepository interface {
	// Get returns the user's settings, or types.ErrNotFound (wrapped) when
	// the user has none yet
	Get(ctx context.Context, userID string) (*model.Settings, error)

	// Upsert creates or replaces the user's settings row
	Upsert(ctx context.Context, settings *model.Settings) (*model.Settings, error)

	// IncrementInvoiceNumber advances the counter by one and returns the
	// number before and after. A user without settings is seeded with
	// current=1, next=2.
	IncrementInvoiceNumber(ctx context.Context, userID string) (*model.InvoiceNumberState, error)

	// SetInvoiceNumber sets the next invoice number to n and returns it
	SetInvoiceNumber(ctx context.Context, userID string, n int) (int, error)
}
