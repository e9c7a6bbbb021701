package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// authMiddleware verifies the bearer token and stores the caller identity
// in the request context. Every protected route rejects unauthenticated
// requests before any data access.
func authMiddleware(verifier interfaces.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(ctx, w, goerr.Wrap(types.ErrUnauthenticated, "authorization header is required"))
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				respondError(ctx, w, goerr.Wrap(types.ErrUnauthenticated, "bearer token is required"))
				return
			}

			identity, err := verifier.Verify(ctx, token)
			if err != nil {
				respondError(ctx, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(ctx, identity)))
		})
	}
}

// accessLogger logs one line per request
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
