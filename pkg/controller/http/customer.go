package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type customerRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	IdentityType      string `json:"identity_type"`
	IdentityReference string `json:"identity_reference"`
	IdentityDoc       string `json:"identity_doc"`
	ReferredBy        string `json:"referred_by"`
	ReferralNotes     string `json:"referral_notes"`
	Notes             string `json:"notes"`
}

func (req *customerRequest) model(userID string) *model.Customer {
	return &model.Customer{
		UserID:            userID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		IdentityType:      req.IdentityType,
		IdentityReference: req.IdentityReference,
		IdentityDoc:       req.IdentityDoc,
		ReferredBy:        req.ReferredBy,
		ReferralNotes:     req.ReferralNotes,
		Notes:             req.Notes,
	}
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	created, err := s.uc.Customer.Create(ctx, req.model(identity.Sub))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, created)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	opt := interfaces.ListCustomersOptions{
		Search:       r.URL.Query().Get("search"),
		ReferredOnly: r.URL.Query().Get("referred") == "true",
	}
	customers, err := s.uc.Customer.List(ctx, identity.Sub, opt)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, customers)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	customer, err := s.uc.Customer.Get(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	customer := req.model(identity.Sub)
	customer.ID = chi.URLParam(r, "id")

	updated, err := s.uc.Customer.Update(ctx, customer)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, updated)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Customer.Delete(ctx, identity.Sub, chi.URLParam(r, "id")); err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
