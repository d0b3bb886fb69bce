package technical

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Alias1177/StockPicker/internal/model"
)

// BollingerBands holds the bands for the latest bar
type BollingerBands struct {
	Upper    float64
	Middle   float64
	Lower    float64
	Position float64 // where the last close sits between the bands, 0..1 inside
}

// CalculateBollingerBands calculates Bollinger Bands using the sample
// standard deviation of the last period closes.
func CalculateBollingerBands(candles []model.Candle, period int, stdDev float64) (BollingerBands, error) {
	window := tail(model.Closes(candles), period)
	if window == nil {
		return BollingerBands{Position: 0.5}, nil
	}

	middle, err := stats.Mean(window)
	if err != nil {
		return BollingerBands{}, fmt.Errorf("failed to calculate mean: %w", err)
	}

	sd, err := stats.StandardDeviationSample(window)
	if err != nil {
		return BollingerBands{}, fmt.Errorf("failed to calculate the standard deviation: %w", err)
	}

	bands := BollingerBands{
		Upper:  middle + sd*stdDev,
		Middle: middle,
		Lower:  middle - sd*stdDev,
	}

	width := bands.Upper - bands.Lower
	if width == 0 {
		bands.Position = 0.5
		return bands, nil
	}
	bands.Position = (last(window) - bands.Lower) / width
	return bands, nil
}
