package usecase

import (
	"context"
	"errors"

	authdomain "newspulse-backend/internal/auth/domain"
	authdto "newspulse-backend/internal/auth/dto"
	recipientdomain "newspulse-backend/internal/recipient/domain"
)

var (
	ErrInvalidIDToken      = errors.New("invalid id token")
	ErrEmailRequired       = errors.New("account has no email address")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrUserNotFound        = errors.New("user not found")
)

// AuthUsecase defines sign-in and session management
type AuthUsecase interface {
	FirebaseSignIn(ctx context.Context, idToken string) (*authdto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// ValidateToken accepts access tokens only
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error)
	Me(ctx context.Context, userID string) (*authdomain.User, error)
}

// ProfileStore is the part of the user directory sign-in needs
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*recipientdomain.Recipient, error)
	UpsertProfile(ctx context.Context, id string, profile recipientdomain.Profile) error
}
