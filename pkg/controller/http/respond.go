package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gemledger-lab/gemledger/pkg/utils/errutil"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// respondData writes the JSON success envelope
func respondData(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		logging.From(ctx).Error("failed to write response", "error", err.Error())
	}
}

// respondError writes the JSON error envelope via the domain status mapping
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err)
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
