package model

import "time"

// Sentiment summarises recent news coverage of a stock
type Sentiment struct {
	Score           float64  `json:"sentiment_score"` // 0 = negative, 1 = positive
	NewsCount       int      `json:"news_count"`
	RecentHeadlines []string `json:"recent_headlines,omitempty"`
	Sources         []string `json:"sources,omitempty"`
}

// NeutralSentiment is reported when no source returned any article
func NeutralSentiment() Sentiment {
	return Sentiment{Score: 0.5}
}

// StockAnalysis is the combined technical and sentiment view of one stock
type StockAnalysis struct {
	Symbol       string              `json:"symbol"`
	CompanyName  string              `json:"company_name"`
	AnalysisDate string              `json:"analysis_date"`
	Indicators   TechnicalIndicators `json:"technical_indicators"`
	Sentiment    Sentiment           `json:"sentiment"`
	MarketCap    int64               `json:"market_cap"`
	Sector       string              `json:"sector"`

	// PreviousPicks are this stock's most recent stored picks, newest first
	PreviousPicks []PastPick `json:"previous_picks,omitempty"`
}

// Article is a news item fetched from a sentiment source
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
