package repository

import (
	"context"
	"fmt"

	authdomain "newspulse-backend/internal/auth/domain"

	"firebase.google.com/go/v4/auth"
)

type firebaseIdentity struct {
	client *auth.Client
}

// NewFirebaseIdentity verifies Firebase Authentication ID tokens
func NewFirebaseIdentity(client *auth.Client) IdentityVerifier {
	return &firebaseIdentity{client: client}
}

func (f *firebaseIdentity) Verify(ctx context.Context, idToken string) (*authdomain.Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	return IdentityFromClaims(token.UID, token.Firebase.SignInProvider, token.Claims), nil
}

// IdentityFromClaims reads the standard profile claims of a verified token
func IdentityFromClaims(uid, provider string, claims map[string]interface{}) *authdomain.Identity {
	identity := &authdomain.Identity{UID: uid, Provider: provider}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = v
	}
	if v, ok := claims["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := claims["picture"].(string); ok {
		identity.Picture = v
	}
	if identity.Provider == "" {
		identity.Provider = "firebase"
	}
	return identity
}
