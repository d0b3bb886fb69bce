package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/StockPicker/internal/analysis/technical"
	"github.com/Alias1177/StockPicker/internal/model"
)

// ErrNoData is returned when no provider has price history for a symbol
var ErrNoData = errors.New("no price history available")

const unknownSector = "Unknown"

// HistoryProvider fetches daily candles for a symbol
type HistoryProvider interface {
	Name() string
	GetHistory(ctx context.Context, symbol string, lookbackDays int) (*model.History, error)
}

// ProfileProvider supplies company reference data missing from price history
type ProfileProvider interface {
	Overview(ctx context.Context, symbol string) (*model.Profile, error)
}

// SentimentAnalyzer scores recent news about a stock
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, symbol, companyName string) model.Sentiment
}

// Options controls what is analysed
type Options struct {
	LookbackDays int
	Indicators   map[string]bool
	Workers      int
}

// Analyzer combines price history and news into a StockAnalysis
type Analyzer struct {
	providers []HistoryProvider
	sentiment SentimentAnalyzer
	profiles  ProfileProvider
	opts      Options
	now       func() time.Time
	logger    zerolog.Logger
}

// New creates an analyzer. Providers are tried in order until one returns
// data; sentiment may be nil, in which case every stock is neutral.
func New(opts Options, sentiment SentimentAnalyzer, providers ...HistoryProvider) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Analyzer{
		providers: providers,
		sentiment: sentiment,
		opts:      opts,
		now:       time.Now,
		logger:    log.With().Str("component", "analyzer").Logger(),
	}
}

// WithProfiles sets the source used to fill in company name, sector and
// market cap when the price provider does not report them
func (a *Analyzer) WithProfiles(p ProfileProvider) *Analyzer {
	a.profiles = p
	return a
}

// AnalyzeStock runs the technical and sentiment analysis for one symbol
func (a *Analyzer) AnalyzeStock(ctx context.Context, symbol string) (*model.StockAnalysis, error) {
	hist, err := a.history(ctx, symbol)
	if err != nil {
		return nil, err
	}
	hist.NormalizeToPounds()
	a.mergeProfile(ctx, hist)

	indicators, err := technical.CalculateAllIndicators(hist.Candles, a.opts.Indicators)
	if err != nil {
		return nil, fmt.Errorf("%s: calculating indicators: %w", symbol, err)
	}

	companyName := hist.CompanyName
	if companyName == "" {
		companyName = symbol
	}
	sector := hist.Sector
	if sector == "" {
		sector = unknownSector
	}

	sent := model.NeutralSentiment()
	if a.sentiment != nil {
		sent = a.sentiment.Analyze(ctx, symbol, companyName)
	}

	return &model.StockAnalysis{
		Symbol:       symbol,
		CompanyName:  companyName,
		AnalysisDate: a.now().Format("2006-01-02"),
		Indicators:   indicators,
		Sentiment:    sent,
		MarketCap:    hist.MarketCap,
		Sector:       sector,
	}, nil
}

// mergeProfile fills blank History fields from the profile provider. A
// failed lookup only costs the extra detail.
func (a *Analyzer) mergeProfile(ctx context.Context, hist *model.History) {
	if a.profiles == nil {
		return
	}
	if hist.Sector != "" && hist.MarketCap > 0 && hist.CompanyName != "" && hist.CompanyName != hist.Symbol {
		return
	}

	profile, err := a.profiles.Overview(ctx, hist.Symbol)
	if err != nil || profile == nil {
		a.logger.Warn().Err(err).Str("symbol", hist.Symbol).Msg("Company profile unavailable")
		return
	}

	if hist.CompanyName == "" || hist.CompanyName == hist.Symbol {
		if profile.Name != "" {
			hist.CompanyName = profile.Name
		}
	}
	if hist.Sector == "" {
		hist.Sector = profile.Sector
	}
	if hist.MarketCap == 0 {
		hist.MarketCap = profile.MarketCap
	}
}

func (a *Analyzer) history(ctx context.Context, symbol string) (*model.History, error) {
	lastErr := ErrNoData
	for _, p := range a.providers {
		hist, err := p.GetHistory(ctx, symbol, a.opts.LookbackDays)
		if err == nil && hist != nil && len(hist.Candles) > 0 {
			return hist, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil {
			err = ErrNoData
		}
		a.logger.Warn().Err(err).Str("symbol", symbol).Str("provider", p.Name()).Msg("Price history unavailable")
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", symbol, lastErr)
}

// AnalyzeMany analyses symbols concurrently. Failed symbols are logged and
// skipped; results keep the order of symbols.
func (a *Analyzer) AnalyzeMany(ctx context.Context, symbols []string) ([]model.StockAnalysis, error) {
	results := make([]*model.StockAnalysis, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			a.logger.Info().Str("symbol", symbol).Msgf("Analyzing %d/%d", i+1, len(symbols))

			analysis, err := a.AnalyzeStock(gctx, symbol)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.logger.Error().Err(err).Str("symbol", symbol).Msg("Skipping stock")
				return nil
			}
			results[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.StockAnalysis, 0, len(symbols))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	a.logger.Info().Int("analyzed", len(out)).Int("requested", len(symbols)).Msg("Analysis complete")
	return out, nil
}
