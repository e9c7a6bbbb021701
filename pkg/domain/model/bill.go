package model

// BillSupplier is the supplier block read off a purchase bill
type BillSupplier struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	GSTNumber string `json:"gstNumber,omitempty"`
}

// BillLineItem is one itemized row on a purchase bill
type BillLineItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
	Amount   float64 `json:"amount"`
}

// BillExtraction is the structured data extracted from a purchase bill
// image. Field names follow the extraction function schema, so the vision
// model's arguments decode straight into it.
type BillExtraction struct {
	Supplier         BillSupplier   `json:"supplier"`
	InvoiceNumber    string         `json:"invoiceNumber"`
	InvoiceDate      string         `json:"invoiceDate"`
	Amount           float64        `json:"amount"`
	PaymentStatus    string         `json:"paymentStatus,omitempty"`
	Items            []BillLineItem `json:"items,omitempty"`
	NumberOfItems    *int           `json:"numberOfItems,omitempty"`
	TaxAmount        float64        `json:"taxAmount,omitempty"`
	DiscountAmount   float64        `json:"discountAmount,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Confidence       float64        `json:"confidence"`
	DetectedLanguage string         `json:"detectedLanguage,omitempty"`
}
