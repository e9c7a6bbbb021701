package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type customerRepository struct {
	mu        sync.RWMutex
	customers map[string]*model.Customer
}

func newCustomerRepository() *customerRepository {
	return &customerRepository{
		customers: make(map[string]*model.Customer),
	}
}

func copyCustomer(c *model.Customer) *model.Customer {
	cp := *c
	return &cp
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCustomer(customer)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.customers[created.ID] = created
	return copyCustomer(created), nil
}

func (r *customerRepository) Get(ctx context.Context, userID, id string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists || customer.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "customer not found", goerr.V("id", id))
	}
	return copyCustomer(customer), nil
}

func (r *customerRepository) List(ctx context.Context, userID string, opt interfaces.ListCustomersOptions) ([]*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*model.Customer, 0)
	for _, c := range r.customers {
		if c.UserID != userID {
			continue
		}
		if opt.Search != "" && !containsFold(c.Name, opt.Search) {
			continue
		}
		if opt.ReferredOnly && c.ReferredBy == "" {
			continue
		}
		customers = append(customers, copyCustomer(c))
	}
	sortByCreatedAtDesc(customers, func(c *model.Customer) time.Time { return c.CreatedAt })
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.customers[customer.ID]
	if !exists || existing.UserID != customer.UserID {
		return nil, goerr.Wrap(types.ErrNotFound, "customer not found", goerr.V("id", customer.ID))
	}

	updated := copyCustomer(customer)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.customers[updated.ID] = updated
	return copyCustomer(updated), nil
}

func (r *customerRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.customers[id]
	if !exists || existing.UserID != userID {
		return goerr.Wrap(types.ErrNotFound, "customer not found", goerr.V("id", id))
	}

	delete(r.customers, id)
	return nil
}
