package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
)

var (
	// ErrNoStocks is returned when there is nothing to rank
	ErrNoStocks = errors.New("no stock data provided for analysis")
	// ErrNoJSON is returned when the reply contains no JSON object
	ErrNoJSON = errors.New("no JSON found in model response")
	// ErrInvalidStructure is returned when the JSON lacks top_10_picks
	ErrInvalidStructure = errors.New("invalid response structure: missing top_10_picks")
)

// Completer sends a prompt to a language model
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Raw is the model's answer before validation
type Raw struct {
	TopPicks       *[]map[string]any `json:"top_10_picks"`
	MarketOverview any               `json:"market_overview"`
	TopSectors     any               `json:"top_sectors"`
	KeyRisks       any               `json:"key_risks"`
}

// Recommender turns analysed stocks into ranked picks
type Recommender struct {
	llm    Completer
	logger zerolog.Logger
}

// NewRecommender creates a recommender backed by llm
func NewRecommender(llm Completer) *Recommender {
	return &Recommender{
		llm:    llm,
		logger: log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend asks the model for the top picks and validates the answer
func (r *Recommender) Recommend(ctx context.Context, stocks []model.StockAnalysis) (*model.Recommendations, error) {
	if len(stocks) == 0 {
		return nil, ErrNoStocks
	}

	content, err := r.llm.Complete(ctx, SystemPrompt, BuildPrompt(stocks))
	if err != nil {
		return nil, fmt.Errorf("requesting recommendations: %w", err)
	}
	r.logger.Debug().Str("response", truncate(content, 500)).Msg("Raw model response")

	raw, err := ParseResponse(content)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to parse model response")
		return nil, err
	}
	r.logger.Info().Int("picks", len(*raw.TopPicks)).Msg("Parsed stock recommendations")

	return Validate(raw, stocks[0].AnalysisDate), nil
}

// ExtractJSON returns the text between the first '{' and the last '}'
func ExtractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		return "", ErrNoJSON
	}
	return content[start : end+1], nil
}

// ParseResponse extracts and decodes the model's JSON answer
func ParseResponse(content string) (*Raw, error) {
	body, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var raw Raw
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decoding model JSON: %w", err)
	}
	if raw.TopPicks == nil {
		return nil, ErrInvalidStructure
	}
	return &raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
