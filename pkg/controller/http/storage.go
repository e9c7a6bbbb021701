package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
	"github.com/gemledger-lab/gemledger/pkg/utils/safe"
)

func (s *Server) signedURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req struct {
		Bucket string `json:"bucket" validate:"required"`
		Path   string `json:"path" validate:"required"`
		// ExpiresIn is in seconds
		ExpiresIn int `json:"expiresIn" validate:"omitempty,min=1"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, err.Error()))
		return
	}

	url, err := s.uc.Storage.SignedURL(ctx, identity.Sub, req.Bucket, req.Path,
		time.Duration(req.ExpiresIn)*time.Second)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]string{"signedUrl": url})
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := r.ParseMultipartForm(usecase.MaxUploadSize); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "file, bucket, and path are required"))
		return
	}
	defer safe.Close(ctx, file)

	bucket := r.FormValue("bucket")
	path := r.FormValue("path")
	if bucket == "" || path == "" {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "file, bucket, and path are required"))
		return
	}

	url, err := s.uc.Storage.Upload(ctx, identity.Sub, bucket, path,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, map[string]string{
		"path":      path,
		"signedUrl": url,
	})
}
