package model

import "time"

// Invoice is a finalized sales invoice. Customer and firm details are
// denormalized snapshots taken at creation time so later edits to the
// customer or settings never rewrite issued invoices.
type Invoice struct {
	ID                      string    `json:"id" firestore:"id"`
	UserID                  string    `json:"user_id" firestore:"user_id"`
	CustomerID              string    `json:"customer_id,omitempty" firestore:"customer_id"`
	InvoiceNumber           string    `json:"invoice_number" firestore:"invoice_number"`
	InvoiceDate             string    `json:"invoice_date" firestore:"invoice_date"`
	Status                  string    `json:"status" firestore:"status"`
	CustomerNameSnapshot    string    `json:"customer_name_snapshot" firestore:"customer_name_snapshot"`
	CustomerAddressSnapshot string    `json:"customer_address_snapshot,omitempty" firestore:"customer_address_snapshot"`
	CustomerPhoneSnapshot   string    `json:"customer_phone_snapshot,omitempty" firestore:"customer_phone_snapshot"`
	CustomerEmailSnapshot   string    `json:"customer_email_snapshot,omitempty" firestore:"customer_email_snapshot"`
	FirmNameSnapshot        string    `json:"firm_name_snapshot" firestore:"firm_name_snapshot"`
	FirmAddressSnapshot     string    `json:"firm_address_snapshot,omitempty" firestore:"firm_address_snapshot"`
	FirmPhoneSnapshot       string    `json:"firm_phone_snapshot,omitempty" firestore:"firm_phone_snapshot"`
	FirmGSTINSnapshot       string    `json:"firm_gstin_snapshot,omitempty" firestore:"firm_gstin_snapshot"`
	Subtotal                float64   `json:"subtotal" firestore:"subtotal"`
	GSTPercentage           float64   `json:"gst_percentage" firestore:"gst_percentage"`
	GSTAmount               float64   `json:"gst_amount" firestore:"gst_amount"`
	GrandTotal              float64   `json:"grand_total" firestore:"grand_total"`
	Notes                   string    `json:"notes,omitempty" firestore:"notes"`
	CreatedAt               time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" firestore:"updated_at"`
}

// InvoiceItem is a single line of an invoice
type InvoiceItem struct {
	ID           string    `json:"id" firestore:"id"`
	InvoiceID    string    `json:"invoice_id" firestore:"invoice_id"`
	UserID       string    `json:"user_id" firestore:"user_id"`
	Name         string    `json:"name" firestore:"name"`
	Quantity     float64   `json:"quantity" firestore:"quantity"`
	Weight       float64   `json:"weight" firestore:"weight"`
	PricePerGram float64   `json:"price_per_gram" firestore:"price_per_gram"`
	Total        float64   `json:"total" firestore:"total"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
}

// InvoiceStatusFinalized is the status assigned to invoices created by the
// AI executor; invoices created through the API may carry other statuses.
const InvoiceStatusFinalized = "finalized"
