package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/analysis/sentiment"
	"github.com/Alias1177/StockPicker/internal/analyzer"
	"github.com/Alias1177/StockPicker/internal/api/alphavantage"
	"github.com/Alias1177/StockPicker/internal/api/groq"
	"github.com/Alias1177/StockPicker/internal/api/newsapi"
	"github.com/Alias1177/StockPicker/internal/api/rss"
	"github.com/Alias1177/StockPicker/internal/api/sheets"
	"github.com/Alias1177/StockPicker/internal/api/yahoo"
	"github.com/Alias1177/StockPicker/internal/app"
	"github.com/Alias1177/StockPicker/internal/config"
	"github.com/Alias1177/StockPicker/internal/database"
	"github.com/Alias1177/StockPicker/internal/model"
	"github.com/Alias1177/StockPicker/internal/notify"
	"github.com/Alias1177/StockPicker/internal/recommend"
)

func run(ctx context.Context, configPath string, testMode, dryRun bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	printConfig(cfg)

	deps, cleanup, err := buildDeps(ctx, cfg, dryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	a := app.New(deps)
	if testMode {
		_, err = a.RunTest(ctx)
	} else {
		_, err = a.Run(ctx, cfg.UKStocks)
	}
	return err
}

func buildDeps(ctx context.Context, cfg *config.Config, dryRun bool) (app.Deps, func(), error) {
	rt := cfg.Runtime
	timeout := time.Duration(rt.RequestTimeout) * time.Second
	closers := []func(){}
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	// 1. Market data, Yahoo first with Alpha Vantage as fallback
	providers := []analyzer.HistoryProvider{
		yahoo.NewClient(yahoo.ClientOptions{RequestTimeout: timeout, RequestsPerSec: rt.RequestsPerSec}),
	}
	var profiles analyzer.ProfileProvider
	if cfg.APIKeys.AlphaVantageAPIKey != "" {
		av := alphavantage.NewClient(alphavantage.ClientOptions{
			APIKey:         cfg.APIKeys.AlphaVantageAPIKey,
			RequestTimeout: timeout,
			RequestsPerSec: 1,
		})
		providers = append(providers, av)
		profiles = av
	} else {
		log.Info().Msg("No Alpha Vantage key: no fallback prices, sector and market cap")
	}

	// 2. Sentiment sources in configured order
	var sources []sentiment.Source
	for _, name := range cfg.Analysis.SentimentSources {
		switch model.SentimentSource(name) {
		case model.SourceNewsAPI:
			if cfg.APIKeys.NewsAPIKey == "" {
				log.Info().Msg("No NewsAPI key: News_API sentiment source skipped")
				continue
			}
			sources = append(sources, sentiment.NewsAPISource{Client: newsapi.NewClient(newsapi.ClientOptions{
				APIKey:         cfg.APIKeys.NewsAPIKey,
				RequestTimeout: timeout,
				RequestsPerSec: rt.RequestsPerSec,
			})})
		case model.SourceYahooRSS:
			sources = append(sources, sentiment.RSSSource{Feed: rss.NewClient(rss.ClientOptions{
				RequestTimeout: timeout,
				RequestsPerSec: rt.RequestsPerSec,
			})})
		}
	}

	stockAnalyzer := analyzer.New(analyzer.Options{
		LookbackDays: cfg.Analysis.LookbackDays,
		Indicators:   cfg.Indicators(),
		Workers:      rt.Workers,
	}, sentiment.NewAnalyzer(sources...), providers...)
	if profiles != nil {
		stockAnalyzer.WithProfiles(profiles)
	}

	deps := app.Deps{
		Analyzer: stockAnalyzer,
		Recommender: recommend.NewRecommender(groq.NewClient(groq.ClientOptions{
			APIKey:      cfg.APIKeys.GroqAPIKey,
			Model:       rt.GroqModel,
			Temperature: 0.1,
			MaxTokens:   4000,
		})),
	}

	// 3. Output
	if dryRun {
		deps.Publisher = app.TablePublisher{Out: os.Stdout}
	} else {
		if rt.GoogleCredentialsPath == "" {
			return app.Deps{}, cleanup, fmt.Errorf("GOOGLE_CREDENTIALS_PATH must be set unless --dry-run is used")
		}
		srv, err := sheets.NewService(ctx, rt.GoogleCredentialsPath)
		if err != nil {
			return app.Deps{}, cleanup, err
		}
		deps.Publisher = sheets.NewPublisher(srv, cfg.GoogleSheets.SpreadsheetID, cfg.GoogleSheets.WorksheetName)
	}

	// 4. Optional history and notifications
	if rt.DatabaseURL != "" {
		db, err := database.New(ctx, rt.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("Recommendation history disabled")
		} else {
			deps.Store = db
			closers = append(closers, func() { db.Close() })
		}
	}
	if rt.TelegramBotToken != "" && rt.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(rt.TelegramBotToken, rt.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram notifications disabled")
		} else {
			deps.Notifier = tg
		}
	}

	return deps, cleanup, nil
}
