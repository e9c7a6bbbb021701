package memory

import (
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// Memory is a mutex-guarded in-memory repository for development and tests
type Memory struct {
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

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		action:        newActionRepository(),
		customer:      newCustomerRepository(),
		invoice:       newInvoiceRepository(),
		purchase:      newPurchaseRepository(),
		supplier:      newSupplierRepository(),
		stock:         newStockRepository(),
		settings:      newSettingsRepository(),
		chat:          newChatRepository(),
		transcription: newTranscriptionRepository(),
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) Customer() interfaces.CustomerRepository {
	return m.customer
}

func (m *Memory) Invoice() interfaces.InvoiceRepository {
	return m.invoice
}

func (m *Memory) Purchase() interfaces.PurchaseRepository {
	return m.purchase
}

func (m *Memory) Supplier() interfaces.SupplierRepository {
	return m.supplier
}

func (m *Memory) Stock() interfaces.StockRepository {
	return m.stock
}

func (m *Memory) Settings() interfaces.SettingsRepository {
	return m.settings
}

func (m *Memory) Chat() interfaces.ChatRepository {
	return m.chat
}

func (m *Memory) Transcription() interfaces.TranscriptionRepository {
	return m.transcription
}

func (m *Memory) Close() error {
	return nil
}
