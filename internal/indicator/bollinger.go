package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

// BandsValue holds one bar's Bollinger Bands reading.
type BandsValue struct {
	Timestamp time.Time
	Upper     float64
	Middle    float64
	Lower     float64
}

// Bollinger computes period-length SMA bands offset by k standard deviations of
// the closes. First value at bar index period-1.
func Bollinger(window []market.Candle, period int, k float64) ([]BandsValue, error) {
	if period <= 0 {
		return nil, fmt.Errorf("bollinger: period must be positive, got %d", period)
	}
	if k <= 0 {
		return nil, fmt.Errorf("bollinger: band width must be positive, got %v", k)
	}
	if len(window) < period {
		return nil, &InsufficientDataError{Indicator: "bollinger", Needed: period, Have: len(window)}
	}

	out := make([]BandsValue, 0, len(window)-period+1)
	for i := period - 1; i < len(window); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += window[j].Close
		}
		mean := sum / float64(period)
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := window[j].Close - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))
		out = append(out, BandsValue{
			Timestamp: window[i].CloseTime,
			Upper:     mean + k*std,
			Middle:    mean,
			Lower:     mean - k*std,
		})
	}
	return out, nil
}
