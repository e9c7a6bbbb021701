package usecase

import (
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/executor"
)

// UseCases bundles all application use cases behind one constructor so the
// HTTP controller takes a single dependency.
type UseCases struct {
	repo interfaces.Repository

	Customer   *CustomerUseCase
	Invoice    *InvoiceUseCase
	Purchase   *PurchaseUseCase
	Stock      *StockUseCase
	Settings   *SettingsUseCase
	Storage    *StorageUseCase
	Action     *ActionUseCase
	Chat       *ChatUseCase
	Transcribe *TranscribeUseCase
	Bill       *BillUseCase
}

type Option func(*UseCases)

// WithBlobStore enables the upload and signed-URL endpoints
func WithBlobStore(store interfaces.BlobStore) Option {
	return func(uc *UseCases) {
		uc.Storage.store = store
		uc.Customer.store = store
	}
}

// WithBillExtractor enables bill photo extraction
func WithBillExtractor(extractor interfaces.BillExtractor) Option {
	return func(uc *UseCases) {
		uc.Bill.extractor = extractor
	}
}

// WithTranscriber enables the voice transcription endpoint
func WithTranscriber(t interfaces.Transcriber) Option {
	return func(uc *UseCases) {
		uc.Transcribe.transcriber = t
	}
}

// WithLLMClient enables the chat assistant
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.Chat.llmClient = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	registry := executor.NewRegistry()
	registry.Register(types.ActionTypeCreateInvoice, executor.NewInvoiceExecutor(repo))

	uc := &UseCases{
		repo:       repo,
		Customer:   NewCustomerUseCase(repo),
		Invoice:    NewInvoiceUseCase(repo),
		Purchase:   NewPurchaseUseCase(repo),
		Stock:      NewStockUseCase(repo),
		Settings:   NewSettingsUseCase(repo),
		Storage:    NewStorageUseCase(repo),
		Action:     NewActionUseCase(repo, registry),
		Chat:       NewChatUseCase(repo),
		Transcribe: NewTranscribeUseCase(repo),
		Bill:       NewBillUseCase(repo),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
