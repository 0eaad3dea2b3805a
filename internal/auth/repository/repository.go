package repository

import (
	"context"

	authdomain "newspulse-backend/internal/auth/domain"
)

// RefreshTokenRepository stores issued refresh tokens so they can be revoked
type RefreshTokenRepository interface {
	Save(token *authdomain.RefreshToken) error
	// Find returns nil, nil when the token is unknown
	Find(token string) (*authdomain.RefreshToken, error)
	Delete(token string) error
	DeleteExpired() (int64, error)
}

// IdentityVerifier checks an ID token issued by the identity provider
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*authdomain.Identity, error)
}
