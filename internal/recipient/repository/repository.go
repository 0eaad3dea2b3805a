package repository

import (
	"context"

	"newspulse-backend/internal/recipient/domain"
)

// RecipientRepository is the user directory: profile, preference and device token per user
type RecipientRepository interface {
	// List loads every recipient in one read
	List(ctx context.Context) ([]*domain.Recipient, error)
	// FindByID returns nil, nil when the user does not exist
	FindByID(ctx context.Context, id string) (*domain.Recipient, error)
	UpsertProfile(ctx context.Context, id string, profile domain.Profile) error
	SetPreference(ctx context.Context, id string, pref domain.Preference) error
	SetDeviceToken(ctx context.Context, id, token string) error
	// ClearDeviceToken is idempotent; a missing user is not an error
	ClearDeviceToken(ctx context.Context, id string) error
}
