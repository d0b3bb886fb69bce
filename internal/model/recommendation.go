package model

import "time"

// Recommendation labels accepted from the model
const (
	RecommendationStrongBuy = "STRONG_BUY"
	RecommendationBuy       = "BUY"
	RecommendationHold      = "HOLD"
)

// Risk levels
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Pick is one ranked stock recommendation
type Pick struct {
	Rank            int      `json:"rank"`
	Symbol          string   `json:"symbol"`
	CompanyName     string   `json:"company_name"`
	Recommendation  string   `json:"recommendation"`
	TargetPrice     float64  `json:"target_price"`
	ConfidenceScore float64  `json:"confidence_score"`
	KeyReasons      []string `json:"key_reasons"`
	RiskLevel       string   `json:"risk_level"`
	TimeHorizon     string   `json:"time_horizon"`
	ExpectedReturn  string   `json:"expected_return"`
}

// Recommendations is the validated daily output
type Recommendations struct {
	TopPicks          []Pick   `json:"top_10_picks"`
	MarketOverview    string   `json:"market_overview"`
	TopSectors        []string `json:"top_sectors"`
	KeyRisks          []string `json:"key_risks"`
	AnalysisTimestamp string   `json:"analysis_timestamp"`
}

// PastPick is a pick stored by an earlier run
type PastPick struct {
	RunDate         time.Time `json:"run_date"`
	Rank            int       `json:"rank"`
	Symbol          string    `json:"symbol"`
	CompanyName     string    `json:"company_name"`
	Recommendation  string    `json:"recommendation"`
	TargetPrice     float64   `json:"target_price"`
	ConfidenceScore float64   `json:"confidence_score"`
	RiskLevel       string    `json:"risk_level"`
	ExpectedReturn  string    `json:"expected_return"`
}
