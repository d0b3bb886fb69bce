package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
)

const (
	maxPicks = 10

	defaultTimeHorizon    = "1-3 days"
	defaultExpectedReturn = "0%"
)

// Validate sanitises the model's answer. At most ten picks are considered;
// picks whose numeric fields cannot be parsed are dropped.
func Validate(raw *Raw, analysisDate string) *model.Recommendations {
	out := &model.Recommendations{
		TopPicks:          []model.Pick{},
		MarketOverview:    asString(raw.MarketOverview),
		TopSectors:        asStrings(raw.TopSectors),
		KeyRisks:          asStrings(raw.KeyRisks),
		AnalysisTimestamp: analysisDate,
	}
	if raw.TopPicks == nil {
		return out
	}

	picks := *raw.TopPicks
	if len(picks) > maxPicks {
		picks = picks[:maxPicks]
	}
	for i, p := range picks {
		pick, err := validatePick(p, i+1)
		if err != nil {
			log.Warn().Err(err).Int("position", i+1).Msg("Skipping invalid recommendation")
			continue
		}
		out.TopPicks = append(out.TopPicks, pick)
	}

	return out
}

func validatePick(p map[string]any, position int) (model.Pick, error) {
	rank, err := number(p, "rank")
	if err != nil {
		return model.Pick{}, err
	}
	target, err := number(p, "target_price")
	if err != nil {
		return model.Pick{}, err
	}
	confidence, err := number(p, "confidence_score")
	if err != nil {
		return model.Pick{}, err
	}

	pick := model.Pick{
		Rank:            int(rank),
		Symbol:          asString(p["symbol"]),
		CompanyName:     asString(p["company_name"]),
		Recommendation:  strings.ToUpper(withDefault(asString(p["recommendation"]), model.RecommendationHold)),
		TargetPrice:     target,
		ConfidenceScore: confidence,
		KeyReasons:      asStrings(p["key_reasons"]),
		RiskLevel:       strings.ToUpper(withDefault(asString(p["risk_level"]), model.RiskMedium)),
		TimeHorizon:     withDefault(asString(p["time_horizon"]), defaultTimeHorizon),
		ExpectedReturn:  withDefault(expectedReturn(p["expected_return"]), defaultExpectedReturn),
	}
	if pick.Rank <= 0 {
		pick.Rank = position
	}
	return pick, nil
}

// number reads a numeric field. Missing fields are zero; strings are parsed.
func number(p map[string]any, key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(n), "£"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%s: cannot parse %q as a number", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s: unexpected value %v", key, v)
	}
}

func expectedReturn(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64) + "%"
	}
	return asString(v)
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return fmt.Sprint(s)
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := asString(v); s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
