package indicator

import (
	"github.com/RomaKul/strategy-backtest/internal/market"
)

// SessionReset selects where VWAP accumulation restarts.
type SessionReset int

const (
	// ResetNone accumulates over the whole window.
	ResetNone SessionReset = iota
	// ResetDaily restarts the accumulation at each UTC day boundary.
	ResetDaily
)

// VWAP returns the cumulative volume-weighted average of typical price over the
// window. One value per bar, aligned to the bar's close_time. With ResetDaily
// the running sums restart on the first bar of each UTC day.
func VWAP(window []market.Candle, reset SessionReset) ([]Value, error) {
	if len(window) == 0 {
		return nil, &InsufficientDataError{Indicator: "vwap", Needed: 1, Have: 0}
	}
	out := make([]Value, 0, len(window))
	var pv, vol float64
	for i, c := range window {
		if reset == ResetDaily && i > 0 {
			prev := window[i-1].OpenTime.UTC()
			cur := c.OpenTime.UTC()
			if prev.YearDay() != cur.YearDay() || prev.Year() != cur.Year() {
				pv, vol = 0, 0
			}
		}
		pv += c.TypicalPrice() * c.Volume
		vol += c.Volume
		v := c.TypicalPrice() // zero traded volume so far; typical price is the only anchor
		if vol > 0 {
			v = pv / vol
		}
		out = append(out, Value{Timestamp: c.CloseTime, Value: v})
	}
	return out, nil
}
