package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/service/authn"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// Authn holds CLI flags for bearer token verification
type Authn struct {
	jwksURL   string
	audience  string
	issuer    string
	noAuthUID string
}

// Flags returns CLI flags for authentication configuration
func (a *Authn) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwks-url",
			Usage:       "JWKS endpoint of the auth service that issues access tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GEMLEDGER_JWKS_URL"),
			Destination: &a.jwksURL,
		},
		&cli.StringFlag{
			Name:        "jwt-audience",
			Usage:       "Required aud claim of access tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GEMLEDGER_JWT_AUDIENCE"),
			Destination: &a.audience,
		},
		&cli.StringFlag{
			Name:        "jwt-issuer",
			Usage:       "Required iss claim of access tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GEMLEDGER_JWT_ISSUER"),
			Destination: &a.issuer,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip token verification and run as the given user ID (development only). Example: --no-auth=dev-user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GEMLEDGER_NO_AUTH"),
			Destination: &a.noAuthUID,
		},
	}
}

// IsNoAuthMode reports whether token verification is disabled
func (a *Authn) IsNoAuthMode() bool {
	return a.noAuthUID != ""
}

// Configure builds the token verifier. In no-auth mode every request runs
// as the configured development user.
func (a *Authn) Configure(ctx context.Context) (interfaces.TokenVerifier, error) {
	if a.noAuthUID != "" {
		logging.Default().Warn("Running in no-auth mode (development only)", "user_id", a.noAuthUID)
		return &authn.StaticVerifier{
			Identity: *auth.NewAnonymousIdentity(a.noAuthUID),
		}, nil
	}

	if a.jwksURL == "" {
		return nil, goerr.New("jwks-url is required unless no-auth mode is enabled")
	}

	var opts []authn.Option
	if a.audience != "" {
		opts = append(opts, authn.WithAudience(a.audience))
	}
	if a.issuer != "" {
		opts = append(opts, authn.WithIssuer(a.issuer))
	}

	verifier, err := authn.New(ctx, a.jwksURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure token verifier")
	}
	logging.Default().Info("Token verification enabled", "jwks_url", a.jwksURL)
	return verifier, nil
}
