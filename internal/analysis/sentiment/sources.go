package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alias1177/StockPicker/internal/model"
)

// NewsSearcher is satisfied by the newsapi client
type NewsSearcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]model.Article, error)
}

// HeadlineFeed is satisfied by the rss client
type HeadlineFeed interface {
	Headlines(ctx context.Context, symbol string) ([]model.Article, error)
}

// NewsAPISource searches articles mentioning the company or its ticker
type NewsAPISource struct {
	Client NewsSearcher
}

// Name implements Source
func (s NewsAPISource) Name() string { return string(model.SourceNewsAPI) }

// Articles implements Source. Without an API key it reports no news.
func (s NewsAPISource) Articles(ctx context.Context, symbol, companyName string) ([]model.Article, error) {
	if s.Client == nil || !s.Client.Enabled() {
		return nil, nil
	}
	return s.Client.Search(ctx, Query(symbol, companyName))
}

// Query builds the search expression for a stock
func Query(symbol, companyName string) string {
	ticker := strings.TrimSuffix(symbol, ".L")
	if companyName == "" || companyName == symbol {
		return ticker
	}
	return fmt.Sprintf("%s OR %s", companyName, ticker)
}

// RSSSource reads the per-symbol headline feed
type RSSSource struct {
	Feed HeadlineFeed
}

// Name implements Source
func (s RSSSource) Name() string { return string(model.SourceYahooRSS) }

// Articles implements Source
func (s RSSSource) Articles(ctx context.Context, symbol, _ string) ([]model.Article, error) {
	return s.Feed.Headlines(ctx, symbol)
}
