package technical

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Alias1177/StockPicker/internal/model"
)

// CalculateVolumeRatio compares the latest volume with the average of the
// last period bars. Values above 1 mean above-average activity.
func CalculateVolumeRatio(candles []model.Candle, period int) (float64, error) {
	window := tail(model.Volumes(candles), period)
	if window == nil {
		return 0, nil
	}
	avg, err := stats.Mean(window)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate mean volume: %w", err)
	}
	if avg == 0 {
		return 0, nil
	}
	return last(window) / avg, nil
}
