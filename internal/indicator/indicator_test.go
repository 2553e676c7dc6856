package indicator

import (
	"time"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

var testEpoch = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// candlesFromCloses builds minute bars with flat bodies, one per close.
func candlesFromCloses(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		hi, lo := open, c
		if lo > hi {
			hi, lo = lo, hi
		}
		out[i] = market.Candle{
			OpenTime:  testEpoch.Add(time.Duration(i) * time.Minute),
			CloseTime: testEpoch.Add(time.Duration(i+1) * time.Minute),
			Open:      open,
			High:      hi,
			Low:       lo,
			Close:     c,
			Volume:    1,
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
