package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// GoogleIssuer is the OIDC discovery endpoint for Google identity tokens.
const GoogleIssuer = "https://accounts.google.com"

// Identity is the result of verifying an identity token.
type Identity struct {
	Email string
	Name  string
}

// IdentityVerifier validates an opaque identity token and yields the
// verified identity, or an error when the token is invalid.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// GoogleVerifier verifies Google-issued ID tokens against a client ID.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier queries Google's OIDC discovery document and builds a
// verifier bound to the given OAuth client ID.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to query OIDC provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("id token verification failed: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token claims: %w", err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("id token carries no email claim")
	}

	return &Identity{Email: claims.Email, Name: claims.Name}, nil
}
