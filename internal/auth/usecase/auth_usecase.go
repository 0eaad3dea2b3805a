package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	authdomain "newspulse-backend/internal/auth/domain"
	authdto "newspulse-backend/internal/auth/dto"
	"newspulse-backend/internal/auth/repository"
	recipientdomain "newspulse-backend/internal/recipient/domain"
	"newspulse-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	identity      repository.IdentityVerifier
	refreshTokens repository.RefreshTokenRepository
	profiles      ProfileStore
	config        *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(identity repository.IdentityVerifier, refreshTokens repository.RefreshTokenRepository, profiles ProfileStore, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		identity:      identity,
		refreshTokens: refreshTokens,
		profiles:      profiles,
		config:        cfg,
	}
}

func (u *authUsecase) FirebaseSignIn(ctx context.Context, idToken string) (*authdto.TokenResponse, error) {
	identity, err := u.identity.Verify(ctx, idToken)
	if err != nil {
		log.Printf("[Auth] ID token rejected: %v", err)
		return nil, ErrInvalidIDToken
	}
	if identity.Email == "" {
		return nil, ErrEmailRequired
	}

	// Profile fields are refreshed on every sign-in; preferences and device token are left alone
	profile := recipientdomain.Profile{
		Email:     identity.Email,
		Name:      identity.Name,
		AvatarURL: identity.Picture,
		Provider:  identity.Provider,
	}
	if err := u.profiles.UpsertProfile(ctx, identity.UID, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	user, err := u.Me(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	claims, err := u.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Check if token exists in repository
	stored, err := u.refreshTokens.Find(refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrInvalidRefreshToken
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = u.refreshTokens.Delete(refreshToken)
		return nil, ErrRefreshTokenExpired
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" || userID != stored.UserID {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := u.generateTokens(user)
	if err != nil {
		return nil, err
	}
	// Rotate: the presented token is single use
	if err := u.refreshTokens.Delete(refreshToken); err != nil {
		log.Printf("[Auth] Failed to revoke rotated refresh token for %s: %v", userID, err)
	}
	return resp, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.refreshTokens.Delete(refreshToken)
}

func (u *authUsecase) ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error) {
	claims, err := u.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	return u.Me(ctx, userID)
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*authdomain.User, error) {
	recipient, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}
	return authdomain.UserFromRecipient(recipient), nil
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	// Generate access token
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	// Generate refresh token
	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	// Store refresh token
	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.refreshTokens.Save(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"typ":     tokenTypeAccess,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"typ":      tokenTypeRefresh,
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
