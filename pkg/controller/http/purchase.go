package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type purchaseInvoiceRequest struct {
	PurchaseNumber string           `json:"purchase_number"`
	InvoiceNumber  string           `json:"invoice_number" validate:"required"`
	InvoiceDate    string           `json:"invoice_date" validate:"required"`
	SupplierID     string           `json:"supplier_id"`
	SupplierName   string           `json:"supplier_name"`
	Amount         *decimal.Decimal `json:"amount" validate:"required"`
	Status         string           `json:"status"`
	PaymentStatus  string           `json:"payment_status"`
	NumberOfItems  *int             `json:"number_of_items" validate:"omitempty,gte=0"`
	Notes          string           `json:"notes"`
	InvoiceFileURL string           `json:"invoice_file_url"`
}

func (s *Server) createPurchaseInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req purchaseInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	created, err := s.uc.Purchase.CreateInvoice(ctx, &model.PurchaseInvoice{
		UserID:         identity.Sub,
		PurchaseNumber: req.PurchaseNumber,
		InvoiceNumber:  req.InvoiceNumber,
		InvoiceDate:    req.InvoiceDate,
		SupplierID:     req.SupplierID,
		SupplierName:   req.SupplierName,
		Amount:         req.Amount.InexactFloat64(),
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		NumberOfItems:  req.NumberOfItems,
		Notes:          req.Notes,
		InvoiceFileURL: req.InvoiceFileURL,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, created)
}

func (s *Server) listPurchaseInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	invoices, err := s.uc.Purchase.ListInvoices(ctx, identity.Sub, interfaces.ListPurchasesOptions{
		Search:        q.Get("search"),
		Status:        q.Get("status"),
		PaymentStatus: q.Get("payment_status"),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, invoices)
}

func (s *Server) getPurchaseInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	invoice, err := s.uc.Purchase.GetInvoice(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, invoice)
}

type supplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (s *Server) createSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	created, err := s.uc.Purchase.CreateSupplier(ctx, &model.Supplier{
		UserID:  identity.Sub,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, created)
}

func (s *Server) updateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	updated, err := s.uc.Purchase.UpdateSupplier(ctx, &model.Supplier{
		ID:      chi.URLParam(r, "id"),
		UserID:  identity.Sub,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, updated)
}

func (s *Server) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Purchase.DeleteSupplier(ctx, identity.Sub, chi.URLParam(r, "id")); err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) listSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	suppliers, err := s.uc.Purchase.ListSuppliers(ctx, identity.Sub, r.URL.Query().Get("search"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, suppliers)
}

func (s *Server) getSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	supplier, err := s.uc.Purchase.GetSupplier(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, supplier)
}
