package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
	httpClient "github.com/Alias1177/StockPicker/internal/platform/http"
)

// ErrNoAPIKey is returned when the client was built without a key
var ErrNoAPIKey = errors.New("news api key not configured")

// Client queries the newsapi.org "everything" endpoint
type Client struct {
	apiKey     string
	baseURL    string
	window     time.Duration
	httpClient *httpClient.Client
	now        func() time.Time
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new NewsAPI client
type ClientOptions struct {
	APIKey         string
	BaseURL        string
	Window         time.Duration // how far back to search, default 7 days
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new NewsAPI client
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	window := options.Window
	if window == 0 {
		window = 7 * 24 * time.Hour
	}

	return &Client{
		apiKey:  options.APIKey,
		baseURL: baseURL,
		window:  window,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			Component:      "newsapi_http",
		}),
		now:    time.Now,
		logger: log.With().Str("component", "newsapi_client").Logger(),
	}
}

// Enabled reports whether a key is configured
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Search returns the most recent English articles matching query
func (c *Client) Search(ctx context.Context, query string) ([]model.Article, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}

	params := url.Values{
		"q":        {query},
		"language": {"en"},
		"sortBy":   {"publishedAt"},
		"from":     {c.now().Add(-c.window).Format("2006-01-02")},
		"apiKey":   {c.apiKey},
	}

	var resp everythingResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/v2/everything", params, &resp); err != nil {
		return nil, fmt.Errorf("searching news for %q: %w", query, err)
	}
	if resp.Status != "ok" {
		c.logger.Warn().Str("code", resp.Code).Str("message", resp.Message).Msg("News API error")
		return nil, fmt.Errorf("news api error: %s: %s", resp.Code, resp.Message)
	}

	articles := make([]model.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, model.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
		})
	}

	c.logger.Debug().Str("query", query).Int("count", len(articles)).Msg("Fetched news")
	return articles, nil
}

type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}
