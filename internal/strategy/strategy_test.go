package strategy

import (
	"errors"
	"testing"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/indicator"
	"github.com/RomaKul/strategy-backtest/internal/market"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

var testEpoch = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// flatBar has open=high=low=close so typical price equals the close.
func flatBar(i int, close float64) market.Candle {
	return market.Candle{
		OpenTime:  testEpoch.Add(time.Duration(i) * time.Minute),
		CloseTime: testEpoch.Add(time.Duration(i+1) * time.Minute),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1,
	}
}

// harness feeds minute bars through the same stream/aggregator wiring the
// runner uses, evaluating the strategy after every append.
type harness struct {
	t       *testing.T
	fast    *market.Stream
	slow    *market.Stream
	agg     *market.Aggregator
	aligner *market.Aligner
	strat   Strategy
}

func newHarness(t *testing.T, strat Strategy, slowInterval time.Duration) *harness {
	slow := market.NewStream("TEST", slowInterval)
	return &harness{
		t:       t,
		fast:    market.NewStream("TEST", time.Minute),
		slow:    slow,
		agg:     market.NewAggregator(slowInterval),
		aligner: market.NewAligner(slow),
		strat:   strat,
	}
}

func (h *harness) view() View {
	return View{Fast: h.fast, Slow: h.slow, Aligner: h.aligner}
}

// step appends the bar and evaluates, failing on non-recoverable errors.
func (h *harness) step(c market.Candle) *sig.Signal {
	h.t.Helper()
	if err := h.fast.Append(c); err != nil {
		h.t.Fatalf("append: %v", err)
	}
	if done, ok := h.agg.Add(c); ok {
		if err := h.slow.Append(done); err != nil {
			h.t.Fatalf("append slow: %v", err)
		}
	}
	s, err := h.strat.OnBar(h.view())
	if err != nil {
		if recoverableWarmup(err) {
			return nil
		}
		h.t.Fatalf("OnBar: %v", err)
	}
	return s
}

func recoverableWarmup(err error) bool {
	var insufficient *indicator.InsufficientDataError
	var noAligned *market.NoAlignedBarError
	return errors.As(err, &insufficient) || errors.As(err, &noAligned)
}
