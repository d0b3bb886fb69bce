package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const shippedConfig = "../../config/config.yaml"

func fullEnv() map[string]string {
	return map[string]string{
		"GROQ_API_KEY":          "gsk_test",
		"NEWS_API_KEY":          "news_test",
		"ALPHA_VANTAGE_API_KEY": "av_test",
		"GOOGLE_SHEET_ID":       "sheet-123",
	}
}

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func readShipped(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(shippedConfig)
	require.NoError(t, err)
	return data
}

func TestParseShippedConfig(t *testing.T) {
	cfg, err := Parse(readShipped(t), lookupFrom(fullEnv()))
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.APIKeys.GroqAPIKey)
	assert.Equal(t, "news_test", cfg.APIKeys.NewsAPIKey)
	assert.Equal(t, "av_test", cfg.APIKeys.AlphaVantageAPIKey)
	assert.Equal(t, "sheet-123", cfg.GoogleSheets.SpreadsheetID)
	assert.Equal(t, "Daily_Stock_Picks", cfg.GoogleSheets.WorksheetName)

	require.Len(t, cfg.UKStocks, 20)
	assert.Equal(t, "BARC.L", cfg.UKStocks[0])

	assert.Equal(t, 30, cfg.Analysis.LookbackDays)
	assert.Equal(t,
		[]string{"RSI", "MACD", "Moving_Averages", "Volume", "Bollinger_Bands"},
		cfg.Analysis.TechnicalIndicators)
	assert.NotEmpty(t, cfg.Analysis.SentimentSources)
}

func TestParseLeavesNoPlaceholders(t *testing.T) {
	cfg, err := Parse(readShipped(t), lookupFrom(fullEnv()))
	require.NoError(t, err)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "${")
}

func TestParseMissingVariable(t *testing.T) {
	env := fullEnv()
	delete(env, "GROQ_API_KEY")

	cfg, err := Parse(readShipped(t), lookupFrom(env))
	require.Error(t, err)
	assert.Nil(t, cfg)

	var missing *MissingEnvError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"GROQ_API_KEY"}, missing.Vars)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
	assert.NotContains(t, err.Error(), "${")
}

func TestParseEmptyVariableCountsAsMissing(t *testing.T) {
	env := fullEnv()
	env["GOOGLE_SHEET_ID"] = ""
	delete(env, "NEWS_API_KEY")

	_, err := Parse(readShipped(t), lookupFrom(env))

	var missing *MissingEnvError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"GOOGLE_SHEET_ID", "NEWS_API_KEY"}, missing.Vars)
}

func TestParseRequiresGroqKey(t *testing.T) {
	docs := map[string]string{
		"literal empty key": `
api_keys: {groq_api_key: "", news_api_key: "", alpha_vantage_api_key: ""}
google_sheets: {spreadsheet_id: id, worksheet_name: tab}
uk_stocks: ["BP.L"]
analysis_parameters: {lookback_days: 1}
`,
		"no api_keys section": `
google_sheets: {spreadsheet_id: id, worksheet_name: tab}
uk_stocks: ["BP.L"]
analysis_parameters: {lookback_days: 1}
`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(doc), lookupFrom(map[string]string{}))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), "api_keys.groq_api_key cannot be empty")
		})
	}
}

func TestInterpolation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name: "embedded placeholder",
			doc: `
api_keys: {groq_api_key: k}
google_sheets:
  spreadsheet_id: "prefix-${SHEET}-suffix"
  worksheet_name: "${TAB}"
uk_stocks: ["BP.L"]
analysis_parameters:
  lookback_days: 5
`,
			env: map[string]string{"SHEET": "abc", "TAB": "Picks"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prefix-abc-suffix", cfg.GoogleSheets.SpreadsheetID)
				assert.Equal(t, "Picks", cfg.GoogleSheets.WorksheetName)
			},
		},
		{
			name: "placeholder inside a list",
			doc: `
api_keys: {groq_api_key: k}
google_sheets: {spreadsheet_id: id, worksheet_name: tab}
uk_stocks: ["${FIRST}", "VOD.L"]
analysis_parameters: {lookback_days: 1}
`,
			env: map[string]string{"FIRST": "BARC.L"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"BARC.L", "VOD.L"}, cfg.UKStocks)
			},
		},
		{
			name: "keys are not interpolated",
			doc: `
api_keys: {groq_api_key: k}
google_sheets: {spreadsheet_id: id, worksheet_name: tab}
uk_stocks: ["BP.L"]
analysis_parameters: {lookback_days: 1}
extra:
  "${NOT_A_VALUE}": 1
`,
			env: map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "id", cfg.GoogleSheets.SpreadsheetID)
			},
		},
		{
			name: "unterminated placeholder",
			doc: `
api_keys: {groq_api_key: k}
google_sheets: {spreadsheet_id: "${SHEET", worksheet_name: tab}
uk_stocks: ["BP.L"]
analysis_parameters: {lookback_days: 1}
`,
			env:     map[string]string{"SHEET": "abc"},
			wantErr: "malformed placeholder",
		},
		{
			name: "substituted value may not carry a placeholder",
			doc: `
api_keys: {groq_api_key: k}
google_sheets: {spreadsheet_id: "${SHEET}", worksheet_name: tab}
uk_stocks: ["BP.L"]
analysis_parameters: {lookback_days: 1}
`,
			env:     map[string]string{"SHEET": "a${B}"},
			wantErr: "malformed placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.doc), lookupFrom(tt.env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIKeys:      APIKeys{GroqAPIKey: "gsk_test"},
			GoogleSheets: GoogleSheets{SpreadsheetID: "id", WorksheetName: "tab"},
			UKStocks:     []string{"BARC.L", "BT-A.L"},
			Analysis: AnalysisParameters{
				TechnicalIndicators: []string{"RSI", "MACD"},
				SentimentSources:    []string{"News_API"},
				LookbackDays:        30,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "duplicate ticker",
			mutate:  func(c *Config) { c.UKStocks = append(c.UKStocks, "BARC.L") },
			wantErr: `uk_stocks[2] "BARC.L" duplicates uk_stocks[0]`,
		},
		{
			name:    "unqualified ticker",
			mutate:  func(c *Config) { c.UKStocks = []string{"BARC"} },
			wantErr: "not an exchange-qualified ticker",
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Analysis.LookbackDays = 0 },
			wantErr: "lookback_days must be greater than 0",
		},
		{
			name:    "negative lookback",
			mutate:  func(c *Config) { c.Analysis.LookbackDays = -3 },
			wantErr: "lookback_days must be greater than 0",
		},
		{
			name:    "unknown indicator",
			mutate:  func(c *Config) { c.Analysis.TechnicalIndicators = []string{"Ichimoku"} },
			wantErr: `"Ichimoku" is not a known indicator`,
		},
		{
			name:    "unknown sentiment source",
			mutate:  func(c *Config) { c.Analysis.SentimentSources = []string{"Twitter"} },
			wantErr: `"Twitter" is not a known sentiment source`,
		},
		{
			name:    "empty groq key",
			mutate:  func(c *Config) { c.APIKeys.GroqAPIKey = "" },
			wantErr: "api_keys.groq_api_key cannot be empty",
		},
		{
			name:    "blank groq key",
			mutate:  func(c *Config) { c.APIKeys.GroqAPIKey = "   " },
			wantErr: "api_keys.groq_api_key cannot be empty",
		},
		{
			name:   "optional keys may be blank",
			mutate: func(c *Config) { c.APIKeys.NewsAPIKey, c.APIKeys.AlphaVantageAPIKey = "", "" },
		},
		{
			name:    "empty spreadsheet id",
			mutate:  func(c *Config) { c.GoogleSheets.SpreadsheetID = "  " },
			wantErr: "spreadsheet_id cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	for k, v := range fullEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("WORKERS", "8")
	t.Setenv("REQUEST_TIMEOUT", "not-a-number")

	cfg, err := Load(shippedConfig)
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.APIKeys.GroqAPIKey)
	assert.Equal(t, 8, cfg.Runtime.Workers)
	assert.Equal(t, 30, cfg.Runtime.RequestTimeout)
	assert.Equal(t, "llama3-8b-8192", cfg.Runtime.GroqModel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
