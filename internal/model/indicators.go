package model

// TechnicalIndicators holds the indicator values for the latest bar
type TechnicalIndicators struct {
	RSI            float64 `json:"rsi"`
	MACD           float64 `json:"macd"`
	MACDSignal     float64 `json:"macd_signal"`
	MACDHist       float64 `json:"macd_hist"`
	SMA20          float64 `json:"sma_20"`
	SMA50          float64 `json:"sma_50"`
	BBUpper        float64 `json:"bb_upper"`
	BBLower        float64 `json:"bb_lower"`
	BBPosition     float64 `json:"bb_position"`  // 0 = lower band, 1 = upper band
	VolumeRatio    float64 `json:"volume_ratio"` // latest volume / 20-day average
	PriceChange5d  float64 `json:"price_change_5d"`
	PriceChange20d float64 `json:"price_change_20d"`
	CurrentPrice   float64 `json:"current_price"`
}
