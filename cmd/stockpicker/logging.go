package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/config"
)

// setupLogging configures the console logger and, if LOG_FILE is set, a
// JSON log file alongside it. The returned func closes the log file.
func setupLogging(rt config.Runtime) func() error {
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	closeFn := func() error { return nil }

	var fileErr error
	if rt.LogFile != "" {
		f, err := openLogFile(rt.LogFile)
		if err != nil {
			fileErr = err
		} else {
			output = zerolog.MultiLevelWriter(output, f)
			closeFn = f.Close
		}
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(rt.LogLevel))
	if err != nil || rt.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", rt.LogFile).Msg("Logging to console only")
	}
	return closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// printConfig outputs the current configuration without secrets
func printConfig(cfg *config.Config) {
	log.Info().
		Str("Worksheet", cfg.GoogleSheets.WorksheetName).
		Int("Stocks", len(cfg.UKStocks)).
		Strs("Indicators", cfg.Analysis.TechnicalIndicators).
		Strs("SentimentSources", cfg.Analysis.SentimentSources).
		Int("LookbackDays", cfg.Analysis.LookbackDays).
		Int("Workers", cfg.Runtime.Workers).
		Int("RequestTimeout", cfg.Runtime.RequestTimeout).
		Str("GroqModel", cfg.Runtime.GroqModel).
		Bool("History", cfg.Runtime.DatabaseURL != "").
		Bool("Telegram", cfg.Runtime.TelegramBotToken != "").
		Msg("Configuration")
}
