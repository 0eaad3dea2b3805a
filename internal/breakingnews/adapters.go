package breakingnews

import (
	"context"
	"errors"
	"fmt"

	"newspulse-backend/pkg/fcm"
	"newspulse-backend/pkg/gnews"

	"github.com/samber/lo"
)

type gnewsSource struct {
	client *gnews.Client
}

// NewGNewsSource serves headlines from GNews top-headlines.
func NewGNewsSource(client *gnews.Client) HeadlineSource {
	return &gnewsSource{client: client}
}

func (s *gnewsSource) TopHeadlines(ctx context.Context, q HeadlineQuery) ([]Headline, error) {
	articles, err := s.client.TopHeadlines(ctx, gnews.Query{
		Topic:   q.Category,
		Keyword: q.Keyword,
		Lang:    q.Locale,
		Country: q.Country,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(articles, func(a gnews.Article, _ int) Headline {
		return Headline{Title: a.Title, Description: a.Description, URL: a.URL, Image: a.Image}
	}), nil
}

type fcmGateway struct {
	client *fcm.Client
}

// NewFCMGateway pushes through Firebase Cloud Messaging.
func NewFCMGateway(client *fcm.Client) PushGateway {
	return &fcmGateway{client: client}
}

func (g *fcmGateway) Send(ctx context.Context, n Notification) error {
	err := g.client.Send(ctx, fcm.Notification{
		Token:    n.TargetToken,
		Title:    n.Title,
		Body:     n.Body,
		ClickURL: n.ClickURL,
		ImageURL: n.ImageURL,
	})
	if errors.Is(err, fcm.ErrTokenInvalid) {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return err
}
