package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// Firestore is the production repository. Every conditional mutation
// (action status transitions, the invoice-number counter, the stock sold
// flag) runs inside a Firestore transaction so the status check and the
// write commit atomically.
type Firestore struct {
	client        *firestore.Client
	action        *actionRepository
	customer      *customerRepository
	invoice       *invoiceRepository
	purchase      *purchaseRepository
	supplier      *supplierRepository
	stock         *stockRepository
	settings      *settingsRepository
	chat          *chatRepository
	transcription *transcriptionRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, for shared projects
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.action.collectionPrefix = prefix
		f.customer.collectionPrefix = prefix
		f.invoice.collectionPrefix = prefix
		f.purchase.collectionPrefix = prefix
		f.supplier.collectionPrefix = prefix
		f.stock.collectionPrefix = prefix
		f.settings.collectionPrefix = prefix
		f.chat.collectionPrefix = prefix
		f.transcription.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:        client,
		action:        newActionRepository(client),
		customer:      newCustomerRepository(client),
		invoice:       newInvoiceRepository(client),
		purchase:      newPurchaseRepository(client),
		supplier:      newSupplierRepository(client),
		stock:         newStockRepository(client),
		settings:      newSettingsRepository(client),
		chat:          newChatRepository(client),
		transcription: newTranscriptionRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) Customer() interfaces.CustomerRepository {
	return f.customer
}

func (f *Firestore) Invoice() interfaces.InvoiceRepository {
	return f.invoice
}

func (f *Firestore) Purchase() interfaces.PurchaseRepository {
	return f.purchase
}

func (f *Firestore) Supplier() interfaces.SupplierRepository {
	return f.supplier
}

func (f *Firestore) Stock() interfaces.StockRepository {
	return f.stock
}

func (f *Firestore) Settings() interfaces.SettingsRepository {
	return f.settings
}

func (f *Firestore) Chat() interfaces.ChatRepository {
	return f.chat
}

func (f *Firestore) Transcription() interfaces.TranscriptionRepository {
	return f.transcription
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
