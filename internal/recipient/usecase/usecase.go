package usecase

import (
	"context"
	"errors"

	"newspulse-backend/internal/recipient/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDeviceToken = errors.New("device token is required")
)

// PreferenceUsecase defines the interface for preference and device token management
type PreferenceUsecase interface {
	// GetPreference returns nil when the user has not chosen a topic yet
	GetPreference(ctx context.Context, userID string) (*domain.Preference, error)
	UpdatePreference(ctx context.Context, userID, category, keyword string) (*domain.Preference, error)
	RegisterDeviceToken(ctx context.Context, userID, token string) error
	UnregisterDeviceToken(ctx context.Context, userID string) error
}
