package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

func (s *Server) executeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		ActionID string `json:"actionId" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	result, err := s.uc.Action.Execute(ctx, identity.Sub, req.ActionID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, result)
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	actions, err := s.uc.Action.List(ctx, identity.Sub)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, actions)
}

func (s *Server) getAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	action, err := s.uc.Action.Get(ctx, identity.Sub, chi.URLParam(r, "id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, action)
}
