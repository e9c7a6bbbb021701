package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type stockItemRequest struct {
	ItemNumber    string           `json:"item_number" validate:"required"`
	Category      string           `json:"category" validate:"required"`
	Material      string           `json:"material" validate:"required"`
	Weight        *decimal.Decimal `json:"weight" validate:"required"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"required"`
	Description   string           `json:"description"`
	Purity        string           `json:"purity"`
	Supplier      string           `json:"supplier"`
	PurchaseDate  string           `json:"purchase_date"`
	ImageURLs     []string         `json:"image_urls"`
}

func (req *stockItemRequest) model(userID string) *model.StockItem {
	return &model.StockItem{
		UserID:        userID,
		ItemNumber:    req.ItemNumber,
		Category:      req.Category,
		Material:      req.Material,
		Weight:        req.Weight.InexactFloat64(),
		PurchasePrice: req.PurchasePrice.InexactFloat64(),
		Description:   req.Description,
		Purity:        req.Purity,
		Supplier:      req.Supplier,
		PurchaseDate:  req.PurchaseDate,
		ImageURLs:     req.ImageURLs,
	}
}

func (s *Server) createStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req stockItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	created, err := s.uc.Stock.Create(ctx, req.model(identity.Sub))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, created)
}

func (s *Server) updateStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req stockItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	item := req.model(identity.Sub)
	item.ID = chi.URLParam(r, "id")

	updated, err := s.uc.Stock.Update(ctx, item)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, updated)
}

func (s *Server) deleteStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Stock.Delete(ctx, identity.Sub, chi.URLParam(r, "id")); err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) listStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var sold *bool
	switch r.URL.Query().Get("sold") {
	case "true":
		v := true
		sold = &v
	case "false":
		v := false
		sold = &v
	}

	items, err := s.uc.Stock.List(ctx, identity.Sub, sold)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, items)
}

func (s *Server) getStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	item, err := s.uc.Stock.Get(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, item)
}

func (s *Server) applyStockAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}

	action, err := types.ParseStockAction(req.Action)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	item, err := s.uc.Stock.Apply(ctx, identity.Sub, chi.URLParam(r, "id"), action)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, item)
}
