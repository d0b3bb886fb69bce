package technical

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Alias1177/StockPicker/internal/model"
)

// CalculateMACD returns the MACD line, its signal line and the histogram
// for the latest bar.
func CalculateMACD(candles []model.Candle, fastPeriod, slowPeriod, signalPeriod int) (float64, float64, float64) {
	if len(candles) < 2 {
		return 0, 0, 0
	}

	closes := model.Closes(candles)
	fast := ewm(closes, fastPeriod)
	slow := ewm(closes, slowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}
	signalLine := ewm(macdLine, signalPeriod)

	macd := last(macdLine)
	signal := last(signalLine)
	return macd, signal, macd - signal
}

// CalculateSMA returns the simple moving average of the last period
// closes, or 0 when there are fewer candles than period.
func CalculateSMA(candles []model.Candle, period int) (float64, error) {
	window := tail(model.Closes(candles), period)
	if window == nil {
		return 0, nil
	}
	sma, err := stats.Mean(window)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate mean: %w", err)
	}
	return sma, nil
}
