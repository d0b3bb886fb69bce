package sentiment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
)

const (
	maxScoredArticles = 10
	maxHeadlines      = 3
)

// Source supplies recent articles about a stock
type Source interface {
	Name() string
	Articles(ctx context.Context, symbol, companyName string) ([]model.Article, error)
}

// Analyzer scores news sentiment across a set of sources
type Analyzer struct {
	sources []Source
	logger  zerolog.Logger
}

// NewAnalyzer creates an analyzer over sources, queried in order
func NewAnalyzer(sources ...Source) *Analyzer {
	return &Analyzer{
		sources: sources,
		logger:  log.With().Str("component", "sentiment").Logger(),
	}
}

// Analyze returns the combined sentiment for a stock. Source failures are
// logged and treated as "no news"; with no articles at all the result is
// neutral.
func (a *Analyzer) Analyze(ctx context.Context, symbol, companyName string) model.Sentiment {
	result := model.NeutralSentiment()

	var scores []float64
	for _, src := range a.sources {
		articles, err := src.Articles(ctx, symbol, companyName)
		if err != nil {
			a.logger.Warn().Err(err).Str("symbol", symbol).Str("source", src.Name()).Msg("Sentiment source failed")
			continue
		}
		if len(articles) == 0 {
			continue
		}

		result.NewsCount += len(articles)
		result.Sources = append(result.Sources, src.Name())

		for i, article := range articles {
			if i >= maxScoredArticles {
				break
			}
			scores = append(scores, ScoreArticle(article))
		}
		for _, article := range articles {
			if len(result.RecentHeadlines) >= maxHeadlines {
				break
			}
			if title := strings.TrimSpace(article.Title); title != "" {
				result.RecentHeadlines = append(result.RecentHeadlines, title)
			}
		}
	}

	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		result.Score = sum / float64(len(scores))
	}

	return result
}
