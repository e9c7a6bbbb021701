package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// Monetary and weight fields are decimal.Decimal so clients may send them
// as JSON numbers or numeric strings; they are stored as float64.
type invoiceItemRequest struct {
	Name         string          `json:"name" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	Weight       decimal.Decimal `json:"weight" validate:"required"`
	PricePerGram decimal.Decimal `json:"price_per_gram" validate:"required"`
	Total        decimal.Decimal `json:"total" validate:"required"`
}

type invoiceRequest struct {
	CustomerID              string               `json:"customer_id"`
	InvoiceNumber           string               `json:"invoice_number" validate:"required"`
	InvoiceDate             string               `json:"invoice_date" validate:"required"`
	Status                  string               `json:"status"`
	CustomerNameSnapshot    string               `json:"customer_name_snapshot" validate:"required"`
	CustomerAddressSnapshot string               `json:"customer_address_snapshot"`
	CustomerPhoneSnapshot   string               `json:"customer_phone_snapshot"`
	CustomerEmailSnapshot   string               `json:"customer_email_snapshot"`
	FirmNameSnapshot        string               `json:"firm_name_snapshot"`
	FirmAddressSnapshot     string               `json:"firm_address_snapshot"`
	FirmPhoneSnapshot       string               `json:"firm_phone_snapshot"`
	FirmGSTINSnapshot       string               `json:"firm_gstin_snapshot"`
	Subtotal                decimal.Decimal      `json:"subtotal"`
	GSTPercentage           decimal.Decimal      `json:"gst_percentage"`
	GSTAmount               decimal.Decimal      `json:"gst_amount"`
	GrandTotal              decimal.Decimal      `json:"grand_total"`
	Notes                   string               `json:"notes"`
	Items                   []invoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req *invoiceRequest) model(userID string) (*model.Invoice, []*model.InvoiceItem) {
	invoice := &model.Invoice{
		UserID:                  userID,
		CustomerID:              req.CustomerID,
		InvoiceNumber:           req.InvoiceNumber,
		InvoiceDate:             req.InvoiceDate,
		Status:                  req.Status,
		CustomerNameSnapshot:    req.CustomerNameSnapshot,
		CustomerAddressSnapshot: req.CustomerAddressSnapshot,
		CustomerPhoneSnapshot:   req.CustomerPhoneSnapshot,
		CustomerEmailSnapshot:   req.CustomerEmailSnapshot,
		FirmNameSnapshot:        req.FirmNameSnapshot,
		FirmAddressSnapshot:     req.FirmAddressSnapshot,
		FirmPhoneSnapshot:       req.FirmPhoneSnapshot,
		FirmGSTINSnapshot:       req.FirmGSTINSnapshot,
		Subtotal:                req.Subtotal.InexactFloat64(),
		GSTPercentage:           req.GSTPercentage.InexactFloat64(),
		GSTAmount:               req.GSTAmount.InexactFloat64(),
		GrandTotal:              req.GrandTotal.InexactFloat64(),
		Notes:                   req.Notes,
	}
	if invoice.Status == "" {
		invoice.Status = model.InvoiceStatusFinalized
	}

	items := make([]*model.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, &model.InvoiceItem{
			Name:         it.Name,
			Quantity:     it.Quantity.InexactFloat64(),
			Weight:       it.Weight.InexactFloat64(),
			PricePerGram: it.PricePerGram.InexactFloat64(),
			Total:        it.Total.InexactFloat64(),
		})
	}
	return invoice, items
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	invoice, items := req.model(identity.Sub)
	created, err := s.uc.Invoice.Create(ctx, invoice, items)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, created)
}

func (s *Server) updateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	invoice, items := req.model(identity.Sub)
	invoice.ID = chi.URLParam(r, "id")

	updated, err := s.uc.Invoice.Update(ctx, invoice, items)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, updated)
}

func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Invoice.Delete(ctx, identity.Sub, chi.URLParam(r, "id")); err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	opt := interfaces.ListInvoicesOptions{
		Search:   q.Get("search"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Status:   q.Get("status"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	invoices, total, err := s.uc.Invoice.List(ctx, identity.Sub, opt)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]any{
		"invoices": invoices,
		"total":    total,
		"page":     page,
	})
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	invoice, err := s.uc.Invoice.Get(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, invoice)
}
