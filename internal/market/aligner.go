package market

import (
	"sort"
	"time"
)

// Aligner maps a fast-interval timestamp onto the most recent fully closed bar of
// a slower stream. Centralizing the lookup keeps the no-look-ahead rule in one
// place instead of being re-derived inside every multi-timeframe strategy.
type Aligner struct {
	slow *Stream
}

// NewAligner wraps the slow-interval stream used for alignment.
func NewAligner(slow *Stream) *Aligner { return &Aligner{slow: slow} }

// Align returns the latest slow candle whose close_time is at or before t.
// The in-progress slow bar never qualifies because streams only hold closed bars.
func (a *Aligner) Align(t time.Time) (Candle, error) {
	candles := a.slow.All()
	// First index whose close_time is after t; the bar before it is the answer.
	idx := sort.Search(len(candles), func(i int) bool {
		return candles[i].CloseTime.After(t)
	})
	if idx == 0 {
		return Candle{}, &NoAlignedBarError{At: t}
	}
	return candles[idx-1], nil
}

// AlignIndex behaves like Align but also reports how many slow bars were closed
// at time t, which lets callers detect whether a new slow bar has arrived.
func (a *Aligner) AlignIndex(t time.Time) (Candle, int, error) {
	c, err := a.Align(t)
	if err != nil {
		return Candle{}, 0, err
	}
	candles := a.slow.All()
	idx := sort.Search(len(candles), func(i int) bool {
		return candles[i].CloseTime.After(t)
	})
	return c, idx, nil
}
