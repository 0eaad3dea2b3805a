package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"newspulse-backend/internal/recipient/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection  = "users"
	fieldPreferences = "preferences"
	fieldFCMToken    = "fcmToken"
)

// userDocument mirrors users/{uid} as the web client writes it.
type userDocument struct {
	Email       string             `firestore:"email,omitempty"`
	Name        string             `firestore:"name,omitempty"`
	AvatarURL   string             `firestore:"avatarUrl,omitempty"`
	Provider    string             `firestore:"provider,omitempty"`
	Preferences *domain.Preference `firestore:"preferences,omitempty"`
	FCMToken    string             `firestore:"fcmToken,omitempty"`
}

func (d *userDocument) toDomain(id string) *domain.Recipient {
	return &domain.Recipient{
		ID: id,
		Profile: domain.Profile{
			Email:     d.Email,
			Name:      d.Name,
			AvatarURL: d.AvatarURL,
			Provider:  d.Provider,
		},
		Preference:  d.Preferences,
		DeviceToken: d.FCMToken,
	}
}

// firestoreRecipientRepository implements RecipientRepository on Cloud Firestore
type firestoreRecipientRepository struct {
	client *firestore.Client
}

func NewFirestoreRecipientRepository(client *firestore.Client) RecipientRepository {
	return &firestoreRecipientRepository{client: client}
}

func (r *firestoreRecipientRepository) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *firestoreRecipientRepository) List(ctx context.Context) ([]*domain.Recipient, error) {
	iter := r.users().Documents(ctx)
	defer iter.Stop()

	var recipients []*domain.Recipient
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}

		var doc userDocument
		if err := snap.DataTo(&doc); err != nil {
			// Malformed documents stay in the list but carry nothing, so they are skipped downstream.
			log.Printf("[Directory] Could not decode user %s: %v", snap.Ref.ID, err)
			recipients = append(recipients, &domain.Recipient{ID: snap.Ref.ID})
			continue
		}
		recipients = append(recipients, doc.toDomain(snap.Ref.ID))
	}
	return recipients, nil
}

func (r *firestoreRecipientRepository) FindByID(ctx context.Context, id string) (*domain.Recipient, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return doc.toDomain(id), nil
}

func (r *firestoreRecipientRepository) UpsertProfile(ctx context.Context, id string, profile domain.Profile) error {
	_, err := r.users().Doc(id).Set(ctx, map[string]interface{}{
		"email":     profile.Email,
		"name":      profile.Name,
		"avatarUrl": profile.AvatarURL,
		"provider":  profile.Provider,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", id, err)
	}
	return nil
}

func (r *firestoreRecipientRepository) SetPreference(ctx context.Context, id string, pref domain.Preference) error {
	_, err := r.users().Doc(id).Set(ctx, map[string]interface{}{
		fieldPreferences: map[string]interface{}{
			"category": pref.Category,
			"keyword":  pref.Keyword,
		},
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", id, err)
	}
	return nil
}

func (r *firestoreRecipientRepository) SetDeviceToken(ctx context.Context, id, token string) error {
	_, err := r.users().Doc(id).Set(ctx, map[string]interface{}{
		fieldFCMToken: token,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set device token %s: %w", id, err)
	}
	return nil
}

func (r *firestoreRecipientRepository) ClearDeviceToken(ctx context.Context, id string) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: fieldFCMToken, Value: firestore.Delete},
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("clear device token %s: %w", id, err)
	}
	return nil
}
