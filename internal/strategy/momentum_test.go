package strategy

import (
	"errors"
	"testing"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/market"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

func momentumConfig() config.Momentum {
	return config.Momentum{
		RSIPeriod: 3, OversoldBound: 30, OverboughtBound: 70,
		MACDFast: 2, MACDSlow: 3, MACDSignal: 2,
	}
}

func newMomentumHarness(t *testing.T) *harness {
	t.Helper()
	strat, err := NewMultiMomentum(momentumConfig())
	if err != nil {
		t.Fatalf("NewMultiMomentum: %v", err)
	}
	return newHarness(t, strat, 5*time.Minute)
}

func TestMultiMomentumRejectsInvertedBounds(t *testing.T) {
	cfg := momentumConfig()
	cfg.OversoldBound = 70
	cfg.OverboughtBound = 30
	_, err := NewMultiMomentum(cfg)
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestMultiMomentumNeedsClosedSlowBar(t *testing.T) {
	h := newMomentumHarness(t)
	for i := 0; i < 4; i++ {
		if err := h.fast.Append(flatBar(i, 100+float64(i))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_, err := h.strat.OnBar(h.view())
	var noAligned *market.NoAlignedBarError
	if !errors.As(err, &noAligned) {
		t.Fatalf("expected NoAlignedBarError, got %v", err)
	}
}

func TestMultiMomentumLongOnPullbackInUptrend(t *testing.T) {
	h := newMomentumHarness(t)

	// Accelerating rise keeps the slow MACD histogram positive.
	close := 0.0
	for i := 0; i < 30; i++ {
		close = 100 + 0.05*float64(i)*float64(i)
		h.step(flatBar(i, close))
	}
	// Sharp pullback inside the forming slow bucket drives fast RSI oversold
	// without touching any closed slow bar.
	var s *sig.Signal
	for i := 30; i < 33; i++ {
		close -= 5
		s = h.step(flatBar(i, close))
	}
	if s == nil || s.Direction != sig.Long {
		t.Fatalf("expected LONG, got %+v", s)
	}
}

func TestMultiMomentumShortOnBounceInDowntrend(t *testing.T) {
	h := newMomentumHarness(t)

	close := 0.0
	for i := 0; i < 30; i++ {
		close = 200 - 0.05*float64(i)*float64(i)
		h.step(flatBar(i, close))
	}
	var s *sig.Signal
	for i := 30; i < 33; i++ {
		close += 5
		s = h.step(flatBar(i, close))
	}
	if s == nil || s.Direction != sig.Short {
		t.Fatalf("expected SHORT, got %+v", s)
	}
}

func TestMultiMomentumEmitsEveryEvaluation(t *testing.T) {
	h := newMomentumHarness(t)
	var s *sig.Signal
	for i := 0; i < 31; i++ {
		s = h.step(flatBar(i, 100))
	}
	// Flat market: no direction, but the evaluation is still reported.
	if s == nil || s.Direction != sig.Flat {
		t.Fatalf("expected FLAT evaluation, got %+v", s)
	}
}
