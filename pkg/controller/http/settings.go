package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// settingsRequest omits user_id and updated_at: both are server-managed
// and ignored when a client sends them
type settingsRequest struct {
	FirmName             string          `json:"firm_name"`
	FirmAddress          string          `json:"firm_address"`
	FirmPhone            string          `json:"firm_phone"`
	FirmGSTIN            string          `json:"firm_gstin"`
	InvoiceNextNumber    int             `json:"invoice_next_number" validate:"omitempty,min=1"`
	DefaultGSTPercentage decimal.Decimal `json:"default_gst_percentage"`
}

func (req *settingsRequest) model(userID string) *model.Settings {
	return &model.Settings{
		UserID:               userID,
		FirmName:             req.FirmName,
		FirmAddress:          req.FirmAddress,
		FirmPhone:            req.FirmPhone,
		FirmGSTIN:            req.FirmGSTIN,
		InvoiceNextNumber:    req.InvoiceNextNumber,
		DefaultGSTPercentage: req.DefaultGSTPercentage.InexactFloat64(),
	}
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	settings, err := s.uc.Settings.Get(ctx, identity.Sub)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, settings)
}

func (s *Server) patchSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	merged, err := s.uc.Settings.Merge(ctx, identity.Sub, req.model(identity.Sub))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, merged)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	replaced, err := s.uc.Settings.Replace(ctx, req.model(identity.Sub))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, replaced)
}

func (s *Server) nextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	state, err := s.uc.Settings.NextInvoiceNumber(ctx, identity.Sub)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, state)
}

func (s *Server) setInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		Number int `json:"number"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}

	n, err := s.uc.Settings.SetInvoiceNumber(ctx, identity.Sub, req.Number)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]int{"nextNumber": n})
}
