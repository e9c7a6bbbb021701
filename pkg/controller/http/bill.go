package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
	"github.com/gemledger-lab/gemledger/pkg/utils/safe"
)

func (s *Server) extractBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := r.ParseMultipartForm(usecase.MaxBillImageSize); err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "malformed multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(ctx, w, goerr.Wrap(types.ErrValidation, "image file is required"))
		return
	}
	defer safe.Close(ctx, file)

	extracted, err := s.uc.Bill.Extract(ctx, identity.Sub,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondData(ctx, w, http.StatusOK, extracted)
}
