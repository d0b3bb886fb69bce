package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for the configuration file
const DefaultPath = "config/config.yaml"

// APIKeys holds the third-party credentials
type APIKeys struct {
	GroqAPIKey         string `yaml:"groq_api_key"`
	NewsAPIKey         string `yaml:"news_api_key"`
	AlphaVantageAPIKey string `yaml:"alpha_vantage_api_key"`
}

// GoogleSheets identifies the output worksheet
type GoogleSheets struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	WorksheetName string `yaml:"worksheet_name"`
}

// AnalysisParameters controls which signals are computed
type AnalysisParameters struct {
	TechnicalIndicators []string `yaml:"technical_indicators"`
	SentimentSources    []string `yaml:"sentiment_sources"`
	LookbackDays        int      `yaml:"lookback_days"`
}

// Config is the analyzer configuration. It is loaded once at startup and
// only read afterwards.
type Config struct {
	APIKeys      APIKeys            `yaml:"api_keys"`
	GoogleSheets GoogleSheets       `yaml:"google_sheets"`
	UKStocks     []string           `yaml:"uk_stocks"`
	Analysis     AnalysisParameters `yaml:"analysis_parameters"`

	// Runtime is populated from plain environment variables, not the file.
	Runtime Runtime `yaml:"-"`
}

// LookupFunc resolves an environment variable. It has the signature of
// os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the YAML file at path, resolves ${VAR} placeholders against
// the process environment (after loading .env if present) and validates
// the result.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		log.Debug().Err(err).Msg("No .env loaded, relying on actual environment variables")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	cfg, err := Parse(data, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}

	cfg.Runtime = LoadRuntime()

	log.Info().
		Str("path", path).
		Int("stocks", len(cfg.UKStocks)).
		Int("lookback_days", cfg.Analysis.LookbackDays).
		Msg("Configuration loaded successfully")

	return cfg, nil
}

// Parse decodes a configuration document, interpolating placeholders with
// lookup. Runtime settings are left zero.
func Parse(data []byte, lookup LookupFunc) (*Config, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := interpolate(&root, lookup); err != nil {
		return nil, err
	}

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Indicators returns the configured indicator names as a set
func (c *Config) Indicators() map[string]bool {
	set := make(map[string]bool, len(c.Analysis.TechnicalIndicators))
	for _, name := range c.Analysis.TechnicalIndicators {
		set[name] = true
	}
	return set
}
