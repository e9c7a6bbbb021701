package authn

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// verifier implements interfaces.TokenVerifier against an external JWKS
// endpoint. The key set is cached and refreshed in the background.
type verifier struct {
	jwksURL  string
	audience string
	issuer   string
	keys     jwk.Set
}

var _ interfaces.TokenVerifier = &verifier{}

type Option func(*verifier)

// WithAudience requires the aud claim to match
func WithAudience(aud string) Option {
	return func(v *verifier) {
		v.audience = aud
	}
}

// WithIssuer requires the iss claim to match
func WithIssuer(iss string) Option {
	return func(v *verifier) {
		v.issuer = iss
	}
}

func New(ctx context.Context, jwksURL string, opts ...Option) (interfaces.TokenVerifier, error) {
	if jwksURL == "" {
		return nil, goerr.New("JWKS URL is required")
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL); err != nil {
		return nil, goerr.Wrap(err, "failed to register JWKS URL", goerr.V("url", jwksURL))
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch JWKS", goerr.V("url", jwksURL))
	}

	v := &verifier{
		jwksURL: jwksURL,
		keys:    jwk.NewCachedSet(cache, jwksURL),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *verifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	parseOpts := []jwt.ParseOption{
		jwt.WithContext(ctx),
		jwt.WithKeySet(v.keys),
		jwt.WithValidate(true),
		// Allow 10 seconds of clock skew
		jwt.WithAcceptableSkew(10),
	}
	if v.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.Parse([]byte(token), parseOpts...)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUnauthenticated, "failed to verify token", goerr.V("cause", err.Error()))
	}

	sub := parsed.Subject()
	if sub == "" {
		return nil, goerr.Wrap(types.ErrUnauthenticated, "sub claim not found in token")
	}

	email := ""
	if raw, ok := parsed.Get("email"); ok {
		if s, ok := raw.(string); ok {
			email = s
		}
	}

	return &auth.Identity{Sub: sub, Email: email}, nil
}

// StaticVerifier returns the same identity for every token. Used by the
// no-authentication development mode.
type StaticVerifier struct {
	Identity auth.Identity
}

var _ interfaces.TokenVerifier = &StaticVerifier{}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	identity := v.Identity
	return &identity, nil
}
