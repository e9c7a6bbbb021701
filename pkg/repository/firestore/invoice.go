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

type invoiceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInvoiceRepository(client *firestore.Client) *invoiceRepository {
	return &invoiceRepository{client: client}
}

func (r *invoiceRepository) collection() string {
	return collectionName(r.collectionPrefix, "invoices")
}

func (r *invoiceRepository) itemsCollection() string {
	return collectionName(r.collectionPrefix, "invoice_items")
}

// Create writes the invoice and all item rows in one transaction so a
// partial failure never leaves orphaned items
func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	now := time.Now().UTC()
	created := *invoice
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now
	created.UpdatedAt = now

	rows := make([]*model.InvoiceItem, 0, len(items))
	for _, it := range items {
		row := *it
		row.ID = uuid.Must(uuid.NewV7()).String()
		row.InvoiceID = created.ID
		row.UserID = created.UserID
		row.CreatedAt = now
		rows = append(rows, &row)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(r.client.Collection(r.collection()).Doc(created.ID), &created); err != nil {
			return goerr.Wrap(err, "failed to write invoice")
		}
		for _, row := range rows {
			if err := tx.Set(r.client.Collection(r.itemsCollection()).Doc(row.ID), row); err != nil {
				return goerr.Wrap(err, "failed to write invoice item")
			}
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create invoice", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *invoiceRepository) Get(ctx context.Context, userID, id string) (*model.Invoice, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get invoice", goerr.V("id", id))
	}

	var invoice model.Invoice
	if err := doc.DataTo(&invoice); err != nil {
		return nil, goerr.Wrap(err, "failed to decode invoice", goerr.V("id", id))
	}
	if invoice.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetItems(ctx context.Context, userID, invoiceID string) ([]*model.InvoiceItem, error) {
	if _, err := r.Get(ctx, userID, invoiceID); err != nil {
		return nil, err
	}

	iter := r.client.Collection(r.itemsCollection()).
		Where("invoice_id", "==", invoiceID).
		Documents(ctx)
	defer iter.Stop()

	items := make([]*model.InvoiceItem, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list invoice items", goerr.V("invoice_id", invoiceID))
		}
		var item model.InvoiceItem
		if err := doc.DataTo(&item); err != nil {
			return nil, goerr.Wrap(err, "failed to decode invoice item", goerr.V("doc", doc.Ref.ID))
		}
		items = append(items, &item)
	}
	return items, nil
}

// Update rewrites the invoice and replaces its full item set in one
// transaction
func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice, items []*model.InvoiceItem) (*model.Invoice, error) {
	now := time.Now().UTC()
	updated := *invoice
	updated.UpdatedAt = now

	rows := make([]*model.InvoiceItem, 0, len(items))
	for _, it := range items {
		row := *it
		row.ID = uuid.Must(uuid.NewV7()).String()
		row.InvoiceID = updated.ID
		row.UserID = updated.UserID
		row.CreatedAt = now
		rows = append(rows, &row)
	}

	ref := r.client.Collection(r.collection()).Doc(updated.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", updated.ID))
			}
			return goerr.Wrap(err, "failed to get invoice")
		}
		var existing model.Invoice
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode invoice", goerr.V("id", updated.ID))
		}
		if existing.UserID != updated.UserID {
			return goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", updated.ID))
		}
		updated.CreatedAt = existing.CreatedAt

		oldItems, err := tx.Documents(r.client.Collection(r.itemsCollection()).
			Where("invoice_id", "==", updated.ID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to read invoice items")
		}

		for _, old := range oldItems {
			if err := tx.Delete(old.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete invoice item")
			}
		}
		if err := tx.Set(ref, &updated); err != nil {
			return goerr.Wrap(err, "failed to write invoice")
		}
		for _, row := range rows {
			if err := tx.Set(r.client.Collection(r.itemsCollection()).Doc(row.ID), row); err != nil {
				return goerr.Wrap(err, "failed to write invoice item")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the invoice and all of its item rows in one transaction
func (r *invoiceRepository) Delete(ctx context.Context, userID, id string) error {
	ref := r.client.Collection(r.collection()).Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get invoice")
		}
		var existing model.Invoice
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode invoice", goerr.V("id", id))
		}
		if existing.UserID != userID {
			return goerr.Wrap(types.ErrNotFound, "invoice not found", goerr.V("id", id))
		}

		items, err := tx.Documents(r.client.Collection(r.itemsCollection()).
			Where("invoice_id", "==", id)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to read invoice items")
		}

		if err := tx.Delete(ref); err != nil {
			return goerr.Wrap(err, "failed to delete invoice")
		}
		for _, item := range items {
			if err := tx.Delete(item.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete invoice item")
			}
		}
		return nil
	})
}

func (r *invoiceRepository) List(ctx context.Context, userID string, opt interfaces.ListInvoicesOptions) ([]*model.Invoice, int, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	matched := make([]*model.Invoice, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to list invoices", goerr.V("user_id", userID))
		}
		var invoice model.Invoice
		if err := doc.DataTo(&invoice); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to decode invoice", goerr.V("doc", doc.Ref.ID))
		}
		if opt.Search != "" &&
			!containsFold(invoice.CustomerNameSnapshot, opt.Search) &&
			!containsFold(invoice.InvoiceNumber, opt.Search) {
			continue
		}
		if opt.DateFrom != "" && invoice.InvoiceDate < opt.DateFrom {
			continue
		}
		if opt.DateTo != "" && invoice.InvoiceDate > opt.DateTo {
			continue
		}
		if opt.Status != "" && invoice.Status != opt.Status {
			continue
		}
		matched = append(matched, &invoice)
	}

	total := len(matched)
	if opt.Offset > len(matched) {
		return []*model.Invoice{}, total, nil
	}
	matched = matched[opt.Offset:]
	if opt.Limit > 0 && opt.Limit < len(matched) {
		matched = matched[:opt.Limit]
	}
	return matched, total, nil
}
