package breakingnews

import (
	"context"
	"errors"

	recipientdomain "newspulse-backend/internal/recipient/domain"
)

var (
	// ErrTokenInvalid is returned by a PushGateway when the target token is permanently rejected.
	ErrTokenInvalid = errors.New("device token permanently invalid")
	// ErrDirectoryUnavailable fails a whole run; nothing is processed.
	ErrDirectoryUnavailable = errors.New("recipient directory unavailable")
	ErrRunInProgress        = errors.New("breaking news run already in progress")
)

// Directory is the slice of the user directory the job touches. ClearDeviceToken
// is its only write.
type Directory interface {
	List(ctx context.Context) ([]*recipientdomain.Recipient, error)
	ClearDeviceToken(ctx context.Context, recipientID string) error
}

// HeadlineQuery is derived per recipient. Keyword is empty unless the user set one.
type HeadlineQuery struct {
	Category string
	Keyword  string
	Locale   string
	Country  string
}

type Headline struct {
	Title       string
	Description string
	URL         string
	Image       string
}

// HeadlineSource returns ranked headlines; an empty slice is not an error.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, q HeadlineQuery) ([]Headline, error)
}

type Notification struct {
	TargetToken string
	Title       string
	Body        string
	ClickURL    string
	ImageURL    string
}

// PushGateway delivers one notification. Permanent token failures wrap ErrTokenInvalid.
type PushGateway interface {
	Send(ctx context.Context, n Notification) error
}
