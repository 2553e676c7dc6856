package indicator

import (
	"fmt"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

// RSI computes Wilder's Relative Strength Index over closes. The first period
// bars are warm-up and emit no value; the result is always within [0,100] and a
// loss-free window reads 100.
func RSI(window []market.Candle, period int) ([]Value, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", period)
	}
	if len(window) < period+1 {
		return nil, &InsufficientDataError{Indicator: "rsi", Needed: period + 1, Have: len(window)}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := window[i].Close - window[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := make([]Value, 0, len(window)-period)
	out = append(out, Value{Timestamp: window[period].CloseTime, Value: rsiValue(avgGain, avgLoss)})

	for i := period + 1; i < len(window); i++ {
		change := window[i].Close - window[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, Value{Timestamp: window[i].CloseTime, Value: rsiValue(avgGain, avgLoss)})
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
