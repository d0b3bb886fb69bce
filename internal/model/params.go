package model

// Indicator names a technical indicator family that can be requested in
// analysis_parameters.technical_indicators.
type Indicator string

const (
	IndicatorRSI            Indicator = "RSI"
	IndicatorMACD           Indicator = "MACD"
	IndicatorMovingAverages Indicator = "Moving_Averages"
	IndicatorVolume         Indicator = "Volume"
	IndicatorBollingerBands Indicator = "Bollinger_Bands"
)

// KnownIndicators lists every indicator the analyzer can compute
var KnownIndicators = []Indicator{
	IndicatorRSI,
	IndicatorMACD,
	IndicatorMovingAverages,
	IndicatorVolume,
	IndicatorBollingerBands,
}

// SentimentSource names a news source used for sentiment scoring
type SentimentSource string

const (
	SourceNewsAPI  SentimentSource = "News_API"
	SourceYahooRSS SentimentSource = "Yahoo_RSS"
)

// KnownSentimentSources lists every supported sentiment source
var KnownSentimentSources = []SentimentSource{
	SourceNewsAPI,
	SourceYahooRSS,
}

// IsKnownIndicator reports whether name is in the indicator vocabulary
func IsKnownIndicator(name string) bool {
	for _, ind := range KnownIndicators {
		if string(ind) == name {
			return true
		}
	}
	return false
}

// IsKnownSentimentSource reports whether name is in the source vocabulary
func IsKnownSentimentSource(name string) bool {
	for _, src := range KnownSentimentSources {
		if string(src) == name {
			return true
		}
	}
	return false
}
