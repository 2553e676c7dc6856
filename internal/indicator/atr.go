package indicator

import (
	"fmt"
	"math"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

// ATR computes Wilder's Average True Range. The very first bar has no true range
// (no previous close) and does not count toward warm-up, so the first value
// lands on bar index period.
func ATR(window []market.Candle, period int) ([]Value, error) {
	if period <= 0 {
		return nil, fmt.Errorf("atr: period must be positive, got %d", period)
	}
	if len(window) < period+1 {
		return nil, &InsufficientDataError{Indicator: "atr", Needed: period + 1, Have: len(window)}
	}

	var seed float64
	for i := 1; i <= period; i++ {
		seed += trueRange(window[i], window[i-1].Close)
	}
	atr := seed / float64(period)

	out := make([]Value, 0, len(window)-period)
	out = append(out, Value{Timestamp: window[period].CloseTime, Value: atr})
	for i := period + 1; i < len(window); i++ {
		tr := trueRange(window[i], window[i-1].Close)
		atr = (atr*float64(period-1) + tr) / float64(period)
		out = append(out, Value{Timestamp: window[i].CloseTime, Value: atr})
	}
	return out, nil
}

func trueRange(c market.Candle, prevClose float64) float64 {
	return math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
}
