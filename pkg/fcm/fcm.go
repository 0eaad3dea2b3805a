package fcm

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// ErrTokenInvalid marks a registration token that FCM will never accept again.
var ErrTokenInvalid = errors.New("fcm: registration token is no longer valid")

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a messaging client from an initialized Firebase app
func NewClient(ctx context.Context, app *firebase.App) (*Client, error) {
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// Notification contains the data to send in a push notification
type Notification struct {
	Token    string
	Title    string
	Body     string
	ImageURL string
	// ClickURL opens when the notification is clicked
	ClickURL string
}

// BuildMessage converts a notification into the web push message FCM expects.
func BuildMessage(n Notification) *messaging.Message {
	msg := &messaging.Message{
		Token: n.Token,
		Notification: &messaging.Notification{
			Title:    n.Title,
			Body:     n.Body,
			ImageURL: n.ImageURL,
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: n.Title,
				Body:  n.Body,
				Icon:  "/icon-192.png",
			},
		},
	}

	if n.ClickURL != "" {
		msg.Data = map[string]string{"click_action": n.ClickURL}
		msg.Webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: n.ClickURL}
	}
	return msg
}

// Send delivers a single notification. Rejected tokens are reported as ErrTokenInvalid.
func (c *Client) Send(ctx context.Context, n Notification) error {
	response, err := c.messagingClient.Send(ctx, BuildMessage(n))
	if err != nil {
		return classifySendError(err)
	}

	log.Printf("[FCM] Message sent to %s: %s", MaskToken(n.Token), response)
	return nil
}

func classifySendError(err error) error {
	if messaging.IsUnregistered(err) || messaging.IsSenderIDMismatch(err) {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return fmt.Errorf("failed to send FCM message: %w", err)
}

// MaskToken shortens a device token for logging.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:12] + "..."
}
