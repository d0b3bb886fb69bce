package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToPounds(t *testing.T) {
	tests := []struct {
		currency     string
		wantClose    float64
		wantCurrency string
	}{
		{currency: "GBp", wantClose: 2.135, wantCurrency: "GBP"},
		{currency: "GBX", wantClose: 2.135, wantCurrency: "GBP"},
		{currency: "GBP", wantClose: 213.5, wantCurrency: "GBP"},
		{currency: "USD", wantClose: 213.5, wantCurrency: "USD"},
		{currency: "", wantClose: 213.5, wantCurrency: ""},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			h := &History{
				Currency: tt.currency,
				Candles:  []Candle{{Open: 212, High: 214, Low: 211, Close: 213.5, Volume: 3000}},
			}
			h.NormalizeToPounds()

			assert.Equal(t, tt.wantCurrency, h.Currency)
			assert.InDelta(t, tt.wantClose, h.Candles[0].Close, 1e-9)
			assert.Equal(t, int64(3000), h.Candles[0].Volume, "volume is not a price")
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		h := &History{Currency: "GBp", Candles: []Candle{{Close: 500}}}
		h.NormalizeToPounds()
		h.NormalizeToPounds()
		assert.InDelta(t, 5, h.Candles[0].Close, 1e-9)
	})
}
