package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// Identity is the verified caller of a request. Sub is the stable user ID
// every repository query is scoped by.
type Identity struct {
	Sub   string
	Email string
}

type ctxIdentityKey struct{}

// ContextWithIdentity returns a new context carrying the caller identity
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, id)
}

// IdentityFromContext returns the caller identity stored in the context.
// Requests that passed the auth middleware always carry one.
func IdentityFromContext(ctx context.Context) (*Identity, error) {
	id, ok := ctx.Value(ctxIdentityKey{}).(*Identity)
	if !ok || id == nil || id.Sub == "" {
		return nil, goerr.Wrap(types.ErrUnauthenticated, "no identity in context")
	}
	return id, nil
}

// NewAnonymousIdentity returns the identity used in no-auth development mode
func NewAnonymousIdentity(uid string) *Identity {
	if uid == "" {
		uid = "anonymous"
	}
	return &Identity{Sub: uid}
}
