package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newspulse-backend/internal/recipient/domain"
	"newspulse-backend/internal/recipient/repository"
	"newspulse-backend/pkg/fcm"
)

type preferenceUsecase struct {
	repo repository.RecipientRepository
}

func NewPreferenceUsecase(repo repository.RecipientRepository) PreferenceUsecase {
	return &preferenceUsecase{repo: repo}
}

func (u *preferenceUsecase) GetPreference(ctx context.Context, userID string) (*domain.Preference, error) {
	recipient, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}
	return recipient.Preference, nil
}

func (u *preferenceUsecase) UpdatePreference(ctx context.Context, userID, category, keyword string) (*domain.Preference, error) {
	parsed, err := domain.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	pref := domain.Preference{
		Category: string(parsed),
		Keyword:  strings.TrimSpace(keyword),
	}
	if err := u.repo.SetPreference(ctx, userID, pref); err != nil {
		return nil, err
	}

	log.Printf("[Preferences] User %s now follows %s (keyword=%q)", userID, pref.Category, pref.Keyword)
	return &pref, nil
}

func (u *preferenceUsecase) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyDeviceToken
	}
	if err := u.repo.SetDeviceToken(ctx, userID, token); err != nil {
		return err
	}
	log.Printf("[Preferences] Registered device token %s for user %s", fcm.MaskToken(token), userID)
	return nil
}

func (u *preferenceUsecase) UnregisterDeviceToken(ctx context.Context, userID string) error {
	return u.repo.ClearDeviceToken(ctx, userID)
}
