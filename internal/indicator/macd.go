package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

// MACDValue carries the three MACD components for one bar. Signal and Histogram
// are NaN while the signal EMA is still seeding; callers must check Ready.
type MACDValue struct {
	Timestamp time.Time
	MACD      float64
	Signal    float64
	Histogram float64
}

// Ready reports whether the signal line (and therefore the histogram) is seeded.
func (v MACDValue) Ready() bool { return !math.IsNaN(v.Signal) }

// MACD computes the MACD line (fast EMA minus slow EMA), its signal EMA, and the
// histogram. The first value falls on bar number slow (index slow-1), where the
// slow EMA seed completes.
func MACD(window []market.Candle, fast, slow, signal int) ([]MACDValue, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, fmt.Errorf("macd: periods must be positive, got %d/%d/%d", fast, slow, signal)
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd: fast period %d must be below slow period %d", fast, slow)
	}
	if len(window) < slow {
		return nil, &InsufficientDataError{Indicator: "macd", Needed: slow, Have: len(window)}
	}

	closes := make([]float64, len(window))
	for i, c := range window {
		closes[i] = c.Close
	}
	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)

	line := make([]float64, 0, len(window)-slow+1)
	for i := slow - 1; i < len(window); i++ {
		line = append(line, fastEMA[i]-slowEMA[i])
	}
	signalEMA := ema(line, signal)

	out := make([]MACDValue, len(line))
	for i := range line {
		out[i] = MACDValue{
			Timestamp: window[slow-1+i].CloseTime,
			MACD:      line[i],
			Signal:    signalEMA[i],
			Histogram: line[i] - signalEMA[i],
		}
	}
	return out, nil
}
