package model

import "time"

// Settings holds per-user firm details and the invoice number counter.
// UserID and UpdatedAt are managed server-side and stripped from any client
// payload before persistence.
type Settings struct {
	UserID               string    `json:"user_id" firestore:"user_id"`
	FirmName             string    `json:"firm_name,omitempty" firestore:"firm_name"`
	FirmAddress          string    `json:"firm_address,omitempty" firestore:"firm_address"`
	FirmPhone            string    `json:"firm_phone,omitempty" firestore:"firm_phone"`
	FirmGSTIN            string    `json:"firm_gstin,omitempty" firestore:"firm_gstin"`
	InvoiceNextNumber    int       `json:"invoice_next_number" firestore:"invoice_next_number"`
	DefaultGSTPercentage float64   `json:"default_gst_percentage,omitempty" firestore:"default_gst_percentage"`
	UpdatedAt            time.Time `json:"updated_at" firestore:"updated_at"`
}

// InvoiceNumberState is the before/after pair returned by the atomic
// fetch-and-increment of the invoice counter
type InvoiceNumberState struct {
	CurrentNumber int `json:"currentNumber"`
	NextNumber    int `json:"nextNumber"`
}
