package market

import (
	"time"
)

// GapPolicy controls how Append treats a hole between consecutive bars.
type GapPolicy int

const (
	// GapTolerant accepts any strictly increasing open_time sequence.
	GapTolerant GapPolicy = iota
	// GapRejecting requires each bar to open exactly one interval after the previous.
	GapRejecting
)

// Stream is an append-only sequence of closed candles for one (instrument, interval).
// Only fully closed bars belong here; forming bars are the feed's problem.
type Stream struct {
	symbol   string
	interval time.Duration
	policy   GapPolicy
	candles  []Candle
}

// StreamOption configures Stream construction.
type StreamOption func(*Stream)

// WithGapPolicy overrides the default gap-tolerant append behaviour.
func WithGapPolicy(p GapPolicy) StreamOption {
	return func(s *Stream) { s.policy = p }
}

// NewStream builds an empty stream for the given symbol and bar interval.
func NewStream(symbol string, interval time.Duration, opts ...StreamOption) *Stream {
	s := &Stream{symbol: symbol, interval: interval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Symbol returns the instrument identifier.
func (s *Stream) Symbol() string { return s.symbol }

// Interval returns the bar duration.
func (s *Stream) Interval() time.Duration { return s.interval }

// Len returns the number of closed bars held.
func (s *Stream) Len() int { return len(s.candles) }

// Append adds the newest closed candle. The bar must validate and its open_time
// must strictly follow the previous bar (exactly one interval later when the
// stream is gap-rejecting). A rejected bar leaves the stream unchanged.
func (s *Stream) Append(c Candle) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if n := len(s.candles); n > 0 {
		prev := s.candles[n-1]
		if !c.OpenTime.After(prev.OpenTime) {
			return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "open_time not increasing"}
		}
		if s.policy == GapRejecting && !c.OpenTime.Equal(prev.OpenTime.Add(s.interval)) {
			return &InvalidCandleError{OpenTime: c.OpenTime, Reason: "gap before bar"}
		}
	}
	s.candles = append(s.candles, c)
	return nil
}

// Last returns the most recent closed bar, if any.
func (s *Stream) Last() (Candle, bool) {
	if len(s.candles) == 0 {
		return Candle{}, false
	}
	return s.candles[len(s.candles)-1], true
}

// Window returns the trailing n bars (all bars when fewer exist). The slice is a
// read-only view; callers must not mutate it.
func (s *Stream) Window(n int) []Candle {
	if n <= 0 || n >= len(s.candles) {
		return s.candles
	}
	return s.candles[len(s.candles)-n:]
}

// All returns every closed bar as a read-only view.
func (s *Stream) All() []Candle { return s.candles }
