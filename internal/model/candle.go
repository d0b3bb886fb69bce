package model

// Candle represents a single daily price bar
type Candle struct {
	Datetime string  `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   int64   `json:"volume,omitempty"`
}

// Closes returns the close prices in candle order
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Volumes returns the traded volumes in candle order
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = float64(c.Volume)
	}
	return out
}

// History is a symbol's price series together with what the data
// provider knows about the company.
type History struct {
	Symbol      string
	CompanyName string
	Currency    string
	Sector      string
	MarketCap   int64
	Candles     []Candle
}

// NormalizeToPounds converts a pence-quoted series (GBp / GBX, as London
// listings are reported) to pounds so prices match the £ used in output.
func (h *History) NormalizeToPounds() {
	switch h.Currency {
	case "GBp", "GBX":
	default:
		return
	}
	for i := range h.Candles {
		c := &h.Candles[i]
		c.Open /= 100
		c.High /= 100
		c.Low /= 100
		c.Close /= 100
	}
	h.Currency = "GBP"
}

// Profile is company reference data from a fundamentals provider
type Profile struct {
	Name      string
	Sector    string
	MarketCap int64
}
