package technical

import "github.com/Alias1177/StockPicker/internal/model"

// CalculateRSI calculates the Relative Strength Index from the simple
// average gain and loss over the last period price changes.
func CalculateRSI(candles []model.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 50.0 // Default value if not enough data
	}

	var gains, losses float64
	for i := len(candles) - period; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat series
		}
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// CalculatePriceChange returns the percentage move of the last close
// against the close n bars earlier, or 0 when there is not enough data.
func CalculatePriceChange(candles []model.Candle, n int) float64 {
	if n <= 0 || len(candles) < n+1 {
		return 0
	}
	base := candles[len(candles)-n-1].Close
	if base == 0 {
		return 0
	}
	return (candles[len(candles)-1].Close - base) / base * 100
}
