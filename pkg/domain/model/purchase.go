package model

import "time"

// PurchaseInvoice is an invoice received from a supplier
type PurchaseInvoice struct {
	ID             string    `json:"id" firestore:"id"`
	UserID         string    `json:"user_id" firestore:"user_id"`
	PurchaseNumber string    `json:"purchase_number" firestore:"purchase_number"`
	InvoiceNumber  string    `json:"invoice_number" firestore:"invoice_number"`
	InvoiceDate    string    `json:"invoice_date" firestore:"invoice_date"`
	SupplierID     string    `json:"supplier_id,omitempty" firestore:"supplier_id"`
	SupplierName   string    `json:"supplier_name,omitempty" firestore:"supplier_name"`
	Amount         float64   `json:"amount" firestore:"amount"`
	Status         string    `json:"status" firestore:"status"`
	PaymentStatus  string    `json:"payment_status" firestore:"payment_status"`
	NumberOfItems  *int      `json:"number_of_items,omitempty" firestore:"number_of_items"`
	Notes          string    `json:"notes,omitempty" firestore:"notes"`
	InvoiceFileURL string    `json:"invoice_file_url,omitempty" firestore:"invoice_file_url"`
	CreatedAt      time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updated_at"`
}

// Defaults applied when a purchase invoice is created without them
const (
	PurchaseStatusReceived      = "Received"
	PurchasePaymentStatusUnpaid = "Unpaid"
)

// Supplier represents a supplier of the shop owner
type Supplier struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email,omitempty" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone"`
	Address   string    `json:"address,omitempty" firestore:"address"`
	Notes     string    `json:"notes,omitempty" firestore:"notes"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}
