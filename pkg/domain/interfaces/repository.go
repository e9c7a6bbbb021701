package interfaces

// Repository defines the interface for data persistence. Every query is
// scoped by the owner's user ID; the repository never returns rows of
// another user.
type Repository interface {
	Action() ActionRepository
	Customer() CustomerRepository
	Invoice() InvoiceRepository
	Purchase() PurchaseRepository
	Supplier() SupplierRepository
	Stock() StockRepository
	Settings() SettingsRepository
	Chat() ChatRepository
	Transcription() TranscriptionRepository

	Close() error
}
