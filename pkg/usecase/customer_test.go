package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

func TestCustomerIdentityOthersRequiresReference(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCases(t)

	_, err := uc.Customer.Create(ctx, &model.Customer{
		UserID:       "u1",
		Name:         "Asha Mehta",
		IdentityType: model.IdentityTypeOthers,
	})
	gt.Error(t, err).Is(types.ErrValidation)

	// Nothing was inserted
	customers := gt.R1(repo.Customer().List(ctx, "u1", interfaces.ListCustomersOptions{})).NoError(t)
	gt.A(t, customers).Length(0)
}

func TestCustomerIdentityOthersWithReference(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	created := gt.R1(uc.Customer.Create(ctx, &model.Customer{
		UserID:            "u1",
		Name:              "Asha Mehta",
		IdentityType:      model.IdentityTypeOthers,
		IdentityReference: "voter-id 1234",
	})).NoError(t)
	gt.Value(t, created.ID).NotEqual("")
}

func TestCustomerSearchAndReferredFilter(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	gt.R1(uc.Customer.Create(ctx, &model.Customer{UserID: "u1", Name: "Asha Mehta"})).NoError(t)
	gt.R1(uc.Customer.Create(ctx, &model.Customer{UserID: "u1", Name: "Ravi Kumar", ReferredBy: "Asha"})).NoError(t)

	found := gt.R1(uc.Customer.List(ctx, "u1", interfaces.ListCustomersOptions{Search: "mehta"})).NoError(t)
	gt.A(t, found).Length(1)
	gt.Value(t, found[0].Name).Equal("Asha Mehta")

	referred := gt.R1(uc.Customer.List(ctx, "u1", interfaces.ListCustomersOptions{ReferredOnly: true})).NoError(t)
	gt.A(t, referred).Length(1)
	gt.Value(t, referred[0].Name).Equal("Ravi Kumar")
}

func TestCustomerOwnerScoping(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCases(t)

	created := gt.R1(uc.Customer.Create(ctx, &model.Customer{UserID: "u1", Name: "Asha Mehta"})).NoError(t)

	_, err := uc.Customer.Get(ctx, "u2", created.ID)
	gt.Error(t, err).Is(types.ErrNotFound)
}
