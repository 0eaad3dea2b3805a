// Package gnews is a small client for the GNews top-headlines endpoint.
package gnews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://gnews.io/api/v4"
	httpTimeout    = 15 * time.Second
	maxErrorBody   = 256
)

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("gnews: GNEWS_API_KEY is not set")

// Client talks to GNews with a shared HTTP client.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Query selects headlines. Keyword is sent only when non-blank.
type Query struct {
	Topic   string
	Keyword string
	Lang    string
	Country string
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

type topHeadlinesResponse struct {
	TotalArticles int       `json:"totalArticles"`
	Articles      []Article `json:"articles"`
}

// TopHeadlines returns the ranked articles for q, in the order GNews returns them.
// An empty result is not an error.
func (c *Client) TopHeadlines(ctx context.Context, q Query) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.topHeadlinesURL(q), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET top-headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("gnews returned %d: %s", resp.StatusCode, snippet)
	}

	var apiResp topHeadlinesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	log.Printf("[GNews] topic=%s keyword=%q -> %d article(s)", q.Topic, q.Keyword, len(apiResp.Articles))
	if apiResp.Articles == nil {
		return []Article{}, nil
	}
	return apiResp.Articles, nil
}

func (c *Client) topHeadlinesURL(q Query) string {
	params := url.Values{}
	params.Set("token", c.apiKey)
	if q.Lang != "" {
		params.Set("lang", q.Lang)
	}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.Topic != "" {
		params.Set("topic", q.Topic)
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		params.Set("q", kw)
	}
	return c.baseURL + "/top-headlines?" + params.Encode()
}
