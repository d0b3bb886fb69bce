package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
)

// TestSymbols is the small universe used by test runs
var TestSymbols = []string{"BARC.L", "BP.L", "LLOY.L", "VOD.L", "HSBA.L"}

var (
	// ErrNoAnalyses is returned when every symbol failed to analyse
	ErrNoAnalyses = errors.New("no stock analysis results obtained")
	// ErrNoRecommendations is returned when the model produced no usable picks
	ErrNoRecommendations = errors.New("no valid recommendations")
)

// StockAnalyzer produces analyses for a list of symbols
type StockAnalyzer interface {
	AnalyzeMany(ctx context.Context, symbols []string) ([]model.StockAnalysis, error)
}

// Recommender ranks analysed stocks
type Recommender interface {
	Recommend(ctx context.Context, stocks []model.StockAnalysis) (*model.Recommendations, error)
}

// Publisher makes recommendations visible to readers
type Publisher interface {
	Publish(ctx context.Context, recs *model.Recommendations) error
}

// HistoryStore keeps past recommendations
type HistoryStore interface {
	SaveRecommendations(ctx context.Context, runDate time.Time, recs *model.Recommendations) error
	RecentPicks(ctx context.Context, symbol string, limit int) ([]model.PastPick, error)
}

// previousPicksPerStock bounds how much history goes into the prompt
const previousPicksPerStock = 3

// Notifier delivers a summary after publishing
type Notifier interface {
	Notify(ctx context.Context, recs *model.Recommendations) error
}

// Deps are the components of a run. Store and Notifier are optional.
type Deps struct {
	Analyzer    StockAnalyzer
	Recommender Recommender
	Publisher   Publisher
	Store       HistoryStore
	Notifier    Notifier
}

// App runs the daily analysis pipeline
type App struct {
	deps   Deps
	now    func() time.Time
	logger zerolog.Logger
}

// New creates the application
func New(deps Deps) *App {
	return &App{
		deps:   deps,
		now:    time.Now,
		logger: log.With().Str("component", "app").Logger(),
	}
}

// Run analyses symbols, ranks them and publishes the result
func (a *App) Run(ctx context.Context, symbols []string) (*model.Recommendations, error) {
	start := a.now()
	a.logger.Info().Int("symbols", len(symbols)).Msg("Starting daily UK stock analysis")

	analyses, err := a.deps.Analyzer.AnalyzeMany(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("analyzing stocks: %w", err)
	}
	if len(analyses) == 0 {
		return nil, ErrNoAnalyses
	}
	a.attachPreviousPicks(ctx, analyses)
	a.logger.Info().Int("analyzed", len(analyses)).Msg("Getting AI recommendations")

	recs, err := a.deps.Recommender.Recommend(ctx, analyses)
	if err != nil {
		return nil, fmt.Errorf("getting recommendations: %w", err)
	}
	if recs == nil || len(recs.TopPicks) == 0 {
		return nil, ErrNoRecommendations
	}
	a.logger.Info().Int("picks", len(recs.TopPicks)).Msg("Got stock recommendations")

	if err := a.deps.Publisher.Publish(ctx, recs); err != nil {
		return nil, fmt.Errorf("publishing recommendations: %w", err)
	}

	if a.deps.Store != nil {
		if err := a.deps.Store.SaveRecommendations(ctx, start, recs); err != nil {
			a.logger.Error().Err(err).Msg("Failed to store recommendation history")
		}
	}
	if a.deps.Notifier != nil {
		if err := a.deps.Notifier.Notify(ctx, recs); err != nil {
			a.logger.Error().Err(err).Msg("Failed to send notification")
		}
	}

	a.logSummary(recs)
	a.logger.Info().Dur("elapsed", a.now().Sub(start)).Msg("Daily analysis completed")
	return recs, nil
}

// attachPreviousPicks adds stored picks to each analysis so the model can
// see how it rated the stock before. Lookup errors are logged and skipped.
func (a *App) attachPreviousPicks(ctx context.Context, analyses []model.StockAnalysis) {
	if a.deps.Store == nil {
		return
	}
	for i := range analyses {
		picks, err := a.deps.Store.RecentPicks(ctx, analyses[i].Symbol, previousPicksPerStock)
		if err != nil {
			a.logger.Warn().Err(err).Str("symbol", analyses[i].Symbol).Msg("Failed to load previous picks")
			continue
		}
		analyses[i].PreviousPicks = picks
	}
}

// RunTest runs the pipeline over TestSymbols
func (a *App) RunTest(ctx context.Context) (*model.Recommendations, error) {
	a.logger.Info().Msg("Running in test mode")
	return a.Run(ctx, TestSymbols)
}

func (a *App) logSummary(recs *model.Recommendations) {
	a.logger.Info().Msg("=== DAILY STOCK ANALYSIS SUMMARY ===")
	a.logger.Info().Str("date", a.now().Format("2006-01-02 15:04:05")).Str("market_overview", orNA(recs.MarketOverview)).Msg("Analysis")
	for _, p := range recs.TopPicks {
		a.logger.Info().Msgf("  %d. %s - %s (Confidence: %g/10)", p.Rank, p.Symbol, p.Recommendation, p.ConfidenceScore)
	}
	a.logger.Info().Str("top_sectors", strings.Join(recs.TopSectors, ", ")).Str("key_risks", strings.Join(recs.KeyRisks, ", ")).Msg("Outlook")
	a.logger.Info().Msg("=== END SUMMARY ===")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
