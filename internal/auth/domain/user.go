package domain

import (
	"time"

	recipientdomain "newspulse-backend/internal/recipient/domain"
)

// User is the signed-in view of a directory entry
type User struct {
	ID                 string                      `json:"id"`
	Email              string                      `json:"email"`
	Name               string                      `json:"name"`
	AvatarURL          string                      `json:"avatar_url,omitempty"`
	Provider           string                      `json:"provider"`
	Preference         *recipientdomain.Preference `json:"preference,omitempty"`
	HasDeviceToken     bool                        `json:"has_device_token"`
	NotificationsReady bool                        `json:"notifications_ready"`
}

func UserFromRecipient(r *recipientdomain.Recipient) *User {
	return &User{
		ID:                 r.ID,
		Email:              r.Profile.Email,
		Name:               r.Profile.Name,
		AvatarURL:          r.Profile.AvatarURL,
		Provider:           r.Profile.Provider,
		Preference:         r.Preference,
		HasDeviceToken:     r.HasDeviceToken(),
		NotificationsReady: r.Eligible(),
	}
}

// Identity is what the identity provider vouches for after verifying an ID token
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	Provider      string
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
