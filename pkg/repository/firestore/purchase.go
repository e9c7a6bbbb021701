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

type purchaseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPurchaseRepository(client *firestore.Client) *purchaseRepository {
	return &purchaseRepository{client: client}
}

func (r *purchaseRepository) collection() string {
	return collectionName(r.collectionPrefix, "purchase_invoices")
}

func (r *purchaseRepository) Create(ctx context.Context, invoice *model.PurchaseInvoice) (*model.PurchaseInvoice, error) {
	now := time.Now().UTC()
	created := *invoice
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create purchase invoice", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *purchaseRepository) Get(ctx context.Context, userID, id string) (*model.PurchaseInvoice, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "purchase invoice not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get purchase invoice", goerr.V("id", id))
	}

	var invoice model.PurchaseInvoice
	if err := doc.DataTo(&invoice); err != nil {
		return nil, goerr.Wrap(err, "failed to decode purchase invoice", goerr.V("id", id))
	}
	if invoice.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "purchase invoice not found", goerr.V("id", id))
	}
	return &invoice, nil
}

func (r *purchaseRepository) List(ctx context.Context, userID string, opt interfaces.ListPurchasesOptions) ([]*model.PurchaseInvoice, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	invoices := make([]*model.PurchaseInvoice, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list purchase invoices", goerr.V("user_id", userID))
		}
		var invoice model.PurchaseInvoice
		if err := doc.DataTo(&invoice); err != nil {
			return nil, goerr.Wrap(err, "failed to decode purchase invoice", goerr.V("doc", doc.Ref.ID))
		}
		if opt.Search != "" &&
			!containsFold(invoice.PurchaseNumber, opt.Search) &&
			!containsFold(invoice.InvoiceNumber, opt.Search) {
			continue
		}
		if opt.Status != "" && invoice.Status != opt.Status {
			continue
		}
		if opt.PaymentStatus != "" && invoice.PaymentStatus != opt.PaymentStatus {
			continue
		}
		invoices = append(invoices, &invoice)
	}
	return invoices, nil
}

type supplierRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSupplierRepository(client *firestore.Client) *supplierRepository {
	return &supplierRepository{client: client}
}

func (r *supplierRepository) collection() string {
	return collectionName(r.collectionPrefix, "suppliers")
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	now := time.Now().UTC()
	created := *supplier
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create supplier", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *supplierRepository) Get(ctx context.Context, userID, id string) (*model.Supplier, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "supplier not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get supplier", goerr.V("id", id))
	}

	var supplier model.Supplier
	if err := doc.DataTo(&supplier); err != nil {
		return nil, goerr.Wrap(err, "failed to decode supplier", goerr.V("id", id))
	}
	if supplier.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "supplier not found", goerr.V("id", id))
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *model.Supplier) (*model.Supplier, error) {
	existing, err := r.Get(ctx, supplier.UserID, supplier.ID)
	if err != nil {
		return nil, err
	}

	updated := *supplier
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update supplier", goerr.V("id", updated.ID))
	}
	return &updated, nil
}

func (r *supplierRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete supplier", goerr.V("id", id))
	}
	return nil
}

func (r *supplierRepository) List(ctx context.Context, userID string, search string) ([]*model.Supplier, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	suppliers := make([]*model.Supplier, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list suppliers", goerr.V("user_id", userID))
		}
		var supplier model.Supplier
		if err := doc.DataTo(&supplier); err != nil {
			return nil, goerr.Wrap(err, "failed to decode supplier", goerr.V("doc", doc.Ref.ID))
		}
		if search != "" && !containsFold(supplier.Name, search) && !containsFold(supplier.Phone, search) {
			continue
		}
		suppliers = append(suppliers, &supplier)
	}
	return suppliers, nil
}
