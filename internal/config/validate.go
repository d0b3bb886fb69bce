package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Alias1177/StockPicker/internal/model"
)

// Exchange-qualified ticker such as BARC.L or BT-A.L
var tickerRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*\.[A-Z]{1,4}$`)

// ValidationError lists every problem found in a configuration
type ValidationError struct {
	Problems []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks the decoded configuration
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	// news and alpha vantage keys may be blank: those sources are skipped
	if strings.TrimSpace(c.APIKeys.GroqAPIKey) == "" {
		add("api_keys.groq_api_key cannot be empty")
	}

	if strings.TrimSpace(c.GoogleSheets.SpreadsheetID) == "" {
		add("google_sheets.spreadsheet_id cannot be empty")
	}
	if strings.TrimSpace(c.GoogleSheets.WorksheetName) == "" {
		add("google_sheets.worksheet_name cannot be empty")
	}

	if len(c.UKStocks) == 0 {
		add("uk_stocks must list at least one symbol")
	}
	seen := make(map[string]int, len(c.UKStocks))
	for i, symbol := range c.UKStocks {
		if !tickerRe.MatchString(symbol) {
			add("uk_stocks[%d] %q is not an exchange-qualified ticker", i, symbol)
		}
		if first, ok := seen[symbol]; ok {
			add("uk_stocks[%d] %q duplicates uk_stocks[%d]", i, symbol, first)
			continue
		}
		seen[symbol] = i
	}

	for i, name := range c.Analysis.TechnicalIndicators {
		if !model.IsKnownIndicator(name) {
			add("analysis_parameters.technical_indicators[%d] %q is not a known indicator", i, name)
		}
	}
	for i, name := range c.Analysis.SentimentSources {
		if !model.IsKnownSentimentSource(name) {
			add("analysis_parameters.sentiment_sources[%d] %q is not a known sentiment source", i, name)
		}
	}
	if c.Analysis.LookbackDays <= 0 {
		add("analysis_parameters.lookback_days must be greater than 0, got %d", c.Analysis.LookbackDays)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
