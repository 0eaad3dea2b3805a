// Package firebaseapp builds the shared Firebase app and Google client options
// from explicit configuration.
package firebaseapp

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/firebase.messaging",
	"https://www.googleapis.com/auth/pubsub",
	"https://www.googleapis.com/auth/userinfo.email",
}

type Config struct {
	ProjectID       string
	CredentialsFile string
	// CredentialsJSON is an inline service account key; it wins over CredentialsFile.
	CredentialsJSON string
}

// ClientOptions resolves credentials for firebase and the Cloud client libraries.
// With neither a file nor inline JSON, application default credentials are used.
func ClientOptions(ctx context.Context, cfg Config) ([]option.ClientOption, error) {
	switch {
	case cfg.CredentialsJSON != "":
		creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.CredentialsJSON), scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse inline credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	case cfg.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}, nil
	default:
		return nil, nil
	}
}

// NewApp initializes the Firebase app that backs Firestore, Auth and Messaging.
func NewApp(ctx context.Context, cfg Config) (*firebase.App, error) {
	opts, err := ClientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	log.Println("[Firebase] App initialized")
	return app, nil
}
