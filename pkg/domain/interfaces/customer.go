package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// ListCustomersOptions filters a customer listing
type ListCustomersOptions struct {
	// Search filters by case-insensitive name substring
	Search string
	// ReferredOnly keeps only customers with a non-empty referred_by
	ReferredOnly bool
}

// CustomerRepository defines data access for customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, userID, id string) (*model.Customer, error)
	List(ctx context.Context, userID string, opt ListCustomersOptions) ([]*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, userID, id string) error
}
