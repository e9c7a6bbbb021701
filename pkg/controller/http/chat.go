package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
	"github.com/gemledger-lab/gemledger/pkg/utils/safe"
)

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		Message   string `json:"message" validate:"required"`
		SessionID string `json:"sessionId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	reply, err := s.uc.Chat.SendMessage(ctx, identity.Sub, req.SessionID, req.Message)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, reply)
}

func (s *Server) listChatSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	sessions, err := s.uc.Chat.ListSessions(ctx, identity.Sub)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, sessions)
}

func (s *Server) newChatSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}

	session, err := s.uc.Chat.NewSession(ctx, identity.Sub, req.Title)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusCreated, session)
}

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "sessionId is required"))
		return
	}

	messages, err := s.uc.Chat.History(ctx, identity.Sub, sessionID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, messages)
}

func (s *Server) deleteChatSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := s.uc.Chat.DeleteSession(ctx, identity.Sub, chi.URLParam(r, "id")); err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) transcribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := r.ParseMultipartForm(usecase.MaxAudioSize); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed multipart form"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "audio file is required"))
		return
	}
	defer safe.Close(ctx, file)

	result, err := s.uc.Transcribe.Transcribe(ctx, identity.Sub,
		r.FormValue("sessionId"), file, header.Size, header.Filename, r.FormValue("language"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, result)
}
