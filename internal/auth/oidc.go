package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/geomark/geomark/pkg/middleware"
)

// OIDCVerifier validates RS256 bearer tokens against the identity provider's
// published key set. Issuer, audience and expiry checks are handled by the
// underlying go-oidc verifier; the provider's JWKS is fetched once at startup
// and cached by the library.
type OIDCVerifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer at https://<domain>/ and builds a
// verifier bound to the given API audience.
func NewOIDCVerifier(ctx context.Context, domain, audience string) (*OIDCVerifier, error) {
	issuer := "https://" + strings.TrimSuffix(domain, "/") + "/"
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: audience})
	return &OIDCVerifier{provider: provider, verifier: verifier}, nil
}

// Verify checks the raw token and returns it as a middleware.Token.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
