package market

import (
	"time"
)

// Aggregator rolls fast-interval bars up into slower bars, the way the original
// feed resamples 1m candles into 15m ones. A slow bar is released only after a
// fast bar from the next bucket arrives, so the forming bar never leaks out.
type Aggregator struct {
	interval    time.Duration
	forming     Candle
	bucketStart time.Time
	active      bool
}

// NewAggregator builds an aggregator producing bars of the given interval.
func NewAggregator(interval time.Duration) *Aggregator {
	return &Aggregator{interval: interval}
}

// Add folds the next fast bar in. When the bar opens a new bucket the previous
// bucket's completed candle is returned.
func (a *Aggregator) Add(c Candle) (Candle, bool) {
	start := c.OpenTime.Truncate(a.interval)
	if !a.active {
		a.startBucket(c, start)
		return Candle{}, false
	}
	if start.Equal(a.bucketStart) {
		a.merge(c)
		return Candle{}, false
	}
	done := a.forming
	a.startBucket(c, start)
	return done, true
}

func (a *Aggregator) startBucket(c Candle, start time.Time) {
	a.bucketStart = start
	a.forming = c
	a.active = true
}

func (a *Aggregator) merge(c Candle) {
	if c.High > a.forming.High {
		a.forming.High = c.High
	}
	if c.Low < a.forming.Low {
		a.forming.Low = c.Low
	}
	a.forming.Close = c.Close
	a.forming.CloseTime = c.CloseTime
	a.forming.Volume += c.Volume
}
