// Package market holds the candle data model shared by indicators, strategies, and the runner.
package market

import (
	"fmt"
	"time"
)

// Candle is one closed OHLCV bar. Immutable once appended to a Stream.
type Candle struct {
	OpenTime  time.Time
	CloseTime time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// TypicalPrice returns (high+low+close)/3, the price VWAP accumulates.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// Validate checks the OHLC ordering invariant and timestamp sanity.
// A non-nil result is always an *InvalidCandleError.
func (c Candle) Validate() error {
	if !c.CloseTime.After(c.OpenTime) {
		return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "close_time not after open_time"}
	}
	if c.Open < 0 || c.High < 0 || c.Low < 0 || c.Close < 0 || c.Volume < 0 {
		return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "negative field"}
	}
	hi, lo := c.Open, c.Close
	if lo > hi {
		hi, lo = lo, hi
	}
	if c.High < hi {
		return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "high below body"}
	}
	if c.Low > lo {
		return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "low above body"}
	}
	return nil
}

// InvalidCandleError reports a bar that violates the OHLC invariant. Recoverable:
// the caller rejects the bar and the stream continues.
type InvalidCandleError struct {
	OpenTime time.Time
	Reason   string
}

func (e *InvalidCandleError) Error() string {
	return fmt.Sprintf("invalid candle at %s: %s", e.OpenTime.Format(time.RFC3339), e.Reason)
}

// NoAlignedBarError reports that the slow timeframe has no closed bar at or before
// the requested time yet. Recoverable: retry once more slow bars close.
type NoAlignedBarError struct {
	At time.Time
}

func (e *NoAlignedBarError) Error() string {
	return fmt.Sprintf("no closed slow bar at or before %s", e.At.Format(time.RFC3339))
}
