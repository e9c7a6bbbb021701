package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type settingsRepository struct {
	mu       sync.Mutex
	settings map[string]*model.Settings
}

func newSettingsRepository() *settingsRepository {
	return &settingsRepository{
		settings: make(map[string]*model.Settings),
	}
}

func copySettings(s *model.Settings) *model.Settings {
	c := *s
	return &c
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*model.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.settings[userID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "settings not found", goerr.V("user_id", userID))
	}
	return copySettings(s), nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := copySettings(settings)
	updated.UpdatedAt = time.Now().UTC()
	if existing, exists := r.settings[settings.UserID]; exists && updated.InvoiceNextNumber == 0 {
		updated.InvoiceNextNumber = existing.InvoiceNextNumber
	}

	r.settings[updated.UserID] = updated
	return copySettings(updated), nil
}

// IncrementInvoiceNumber holds the lock across the read and the write so
// concurrent callers always receive distinct numbers.
func (r *settingsRepository) IncrementInvoiceNumber(ctx context.Context, userID string) (*model.InvoiceNumberState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.settings[userID]
	if !exists {
		s = &model.Settings{UserID: userID, InvoiceNextNumber: 1}
		r.settings[userID] = s
	}
	if s.InvoiceNextNumber < 1 {
		s.InvoiceNextNumber = 1
	}

	current := s.InvoiceNextNumber
	s.InvoiceNextNumber = current + 1
	s.UpdatedAt = time.Now().UTC()

	return &model.InvoiceNumberState{
		CurrentNumber: current,
		NextNumber:    s.InvoiceNextNumber,
	}, nil
}

func (r *settingsRepository) SetInvoiceNumber(ctx context.Context, userID string, n int) (int, error) {
	if n < 1 {
		return 0, goerr.Wrap(types.ErrValidation, "invoice number must be a positive integer", goerr.V("number", n))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.settings[userID]
	if !exists {
		s = &model.Settings{UserID: userID}
		r.settings[userID] = s
	}
	s.InvoiceNextNumber = n
	s.UpdatedAt = time.Now().UTC()
	return n, nil
}
