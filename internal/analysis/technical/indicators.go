package technical

import (
	"fmt"

	"github.com/Alias1177/StockPicker/internal/model"
)

// Periods used by the daily analysis
const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	ShortSMAPeriod   = 20
	LongSMAPeriod    = 50
	BBPeriod         = 20
	BBStdDev         = 2.0
	VolumePeriod     = 20
)

// CalculateAllIndicators computes the requested indicator families for the
// latest bar. Price, 5-day and 20-day change are always filled in.
func CalculateAllIndicators(candles []model.Candle, enabled map[string]bool) (model.TechnicalIndicators, error) {
	var ind model.TechnicalIndicators
	if len(candles) == 0 {
		return ind, nil
	}

	ind.CurrentPrice = candles[len(candles)-1].Close
	ind.PriceChange5d = CalculatePriceChange(candles, 5)
	ind.PriceChange20d = CalculatePriceChange(candles, 20)

	var err error
	if enabled[string(model.IndicatorRSI)] {
		ind.RSI = CalculateRSI(candles, RSIPeriod)
	}
	if enabled[string(model.IndicatorMACD)] {
		ind.MACD, ind.MACDSignal, ind.MACDHist = CalculateMACD(candles, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	}
	if enabled[string(model.IndicatorMovingAverages)] {
		if ind.SMA20, err = CalculateSMA(candles, ShortSMAPeriod); err != nil {
			return ind, fmt.Errorf("sma%d: %w", ShortSMAPeriod, err)
		}
		if ind.SMA50, err = CalculateSMA(candles, LongSMAPeriod); err != nil {
			return ind, fmt.Errorf("sma%d: %w", LongSMAPeriod, err)
		}
	}
	if enabled[string(model.IndicatorBollingerBands)] {
		bb, err := CalculateBollingerBands(candles, BBPeriod, BBStdDev)
		if err != nil {
			return ind, fmt.Errorf("bollinger bands: %w", err)
		}
		ind.BBUpper, ind.BBLower, ind.BBPosition = bb.Upper, bb.Lower, bb.Position
	}
	if enabled[string(model.IndicatorVolume)] {
		if ind.VolumeRatio, err = CalculateVolumeRatio(candles, VolumePeriod); err != nil {
			return ind, fmt.Errorf("volume ratio: %w", err)
		}
	}

	return ind, nil
}
