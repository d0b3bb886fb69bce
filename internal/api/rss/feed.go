package rss

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
	httpClient "github.com/Alias1177/StockPicker/internal/platform/http"
)

// Client reads per-symbol headline feeds from Yahoo Finance
type Client struct {
	baseURL    string
	region     string
	httpClient *httpClient.Client
	parser     *gofeed.Parser
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new feed client
type ClientOptions struct {
	BaseURL        string
	Region         string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new headline feed client
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"
	}
	region := options.Region
	if region == "" {
		region = "GB"
	}

	return &Client{
		baseURL: baseURL,
		region:  region,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			Component:      "rss_http",
		}),
		parser: gofeed.NewParser(),
		logger: log.With().Str("component", "rss_client").Logger(),
	}
}

// Headlines returns the feed items for symbol, newest first as published
func (c *Client) Headlines(ctx context.Context, symbol string) ([]model.Article, error) {
	params := url.Values{
		"s":      {symbol},
		"region": {c.region},
		"lang":   {"en-" + c.region},
	}

	body, err := c.httpClient.Get(ctx, c.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetching feed for %s: %w", symbol, err)
	}

	feed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed for %s: %w", symbol, err)
	}

	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := model.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      feed.Title,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(articles)).Msg("Fetched headlines")
	return articles, nil
}
