package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/utils/async"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// CustomerUseCase handles customer CRUD. When a create that carried an
// uploaded identity document fails at the store, the orphaned blob is
// deleted best-effort; that cleanup failing is logged and swallowed.
type CustomerUseCase struct {
	repo   interfaces.Repository
	store  interfaces.BlobStore
	bucket string
}

func NewCustomerUseCase(repo interfaces.Repository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// SetIdentityDocBucket names the bucket identity documents live in, for
// rollback deletes
func (uc *CustomerUseCase) SetIdentityDocBucket(bucket string) {
	uc.bucket = bucket
}

func (uc *CustomerUseCase) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	created, err := uc.repo.Customer().Create(ctx, customer)
	if err != nil {
		uc.rollbackIdentityDoc(ctx, customer.IdentityDoc)
		return nil, err
	}
	return created, nil
}

func (uc *CustomerUseCase) Get(ctx context.Context, userID, id string) (*model.Customer, error) {
	return uc.repo.Customer().Get(ctx, userID, id)
}

func (uc *CustomerUseCase) List(ctx context.Context, userID string, opt interfaces.ListCustomersOptions) ([]*model.Customer, error) {
	return uc.repo.Customer().List(ctx, userID, opt)
}

func (uc *CustomerUseCase) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	return uc.repo.Customer().Update(ctx, customer)
}

func (uc *CustomerUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Customer().Delete(ctx, userID, id)
}

func validateCustomer(customer *model.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return goerr.Wrap(types.ErrValidation, "customer name is required")
	}
	if customer.IdentityType == model.IdentityTypeOthers && strings.TrimSpace(customer.IdentityReference) == "" {
		return goerr.Wrap(types.ErrValidation,
			"identity_reference is required when identity_type is others")
	}
	return nil
}

// rollbackIdentityDoc deletes the uploaded blob in the background; a
// failed cleanup is logged, never surfaced
func (uc *CustomerUseCase) rollbackIdentityDoc(ctx context.Context, object string) {
	if uc.store == nil || uc.bucket == "" || object == "" {
		return
	}
	bucket := uc.bucket
	store := uc.store
	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := store.Delete(ctx, bucket, object); err != nil {
			logging.From(ctx).Warn("failed to delete orphaned identity document",
				"bucket", bucket,
				"object", object,
				"error", err.Error())
		}
		return nil
	})
}
