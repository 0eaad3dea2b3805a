package domain

import (
	"net/url"
	"time"
)

type Source struct {
	Name string `json:"name" firestore:"name"`
	URL  string `json:"url,omitempty" firestore:"url,omitempty"`
}

// Article is a headline as the dashboard shows it.
type Article struct {
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Content     string `json:"content,omitempty" firestore:"content,omitempty"`
	URL         string `json:"url" firestore:"url"`
	Image       string `json:"image,omitempty" firestore:"image,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty" firestore:"publishedAt,omitempty"`
	Source      Source `json:"source" firestore:"source"`
}

// SavedArticle is an article bookmarked by a user.
type SavedArticle struct {
	ID      string    `json:"id"`
	Article Article   `json:"article"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedArticleID is the document ID for an article; one document per URL.
func SavedArticleID(articleURL string) string {
	return url.QueryEscape(articleURL)
}
