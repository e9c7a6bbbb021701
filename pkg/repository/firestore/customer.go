package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type customerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCustomerRepository(client *firestore.Client) *customerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) collection() string {
	return collectionName(r.collectionPrefix, "customers")
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	now := time.Now().UTC()
	created := *customer
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create customer", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *customerRepository) Get(ctx context.Context, userID, id string) (*model.Customer, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "customer not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get customer", goerr.V("id", id))
	}

	var customer model.Customer
	if err := doc.DataTo(&customer); err != nil {
		return nil, goerr.Wrap(err, "failed to decode customer", goerr.V("id", id))
	}
	if customer.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "customer not found", goerr.V("id", id))
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, userID string, opt interfaces.ListCustomersOptions) ([]*model.Customer, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	customers := make([]*model.Customer, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list customers", goerr.V("user_id", userID))
		}
		var customer model.Customer
		if err := doc.DataTo(&customer); err != nil {
			return nil, goerr.Wrap(err, "failed to decode customer", goerr.V("doc", doc.Ref.ID))
		}
		if opt.Search != "" && !containsFold(customer.Name, opt.Search) {
			continue
		}
		if opt.ReferredOnly && customer.ReferredBy == "" {
			continue
		}
		customers = append(customers, &customer)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	existing, err := r.Get(ctx, customer.UserID, customer.ID)
	if err != nil {
		return nil, err
	}

	updated := *customer
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update customer", goerr.V("id", updated.ID))
	}
	return &updated, nil
}

func (r *customerRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete customer", goerr.V("id", id))
	}
	return nil
}
