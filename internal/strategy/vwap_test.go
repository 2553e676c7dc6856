package strategy

import (
	"testing"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/config"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

func newVWAPHarness(t *testing.T) *harness {
	t.Helper()
	strat, err := NewVWAPDeviation(config.VWAP{Threshold: 0.01, SessionReset: "none", Window: 50})
	if err != nil {
		t.Fatalf("NewVWAPDeviation: %v", err)
	}
	return newHarness(t, strat, 15*time.Minute)
}

func TestVWAPDeviationLongRoundTrip(t *testing.T) {
	h := newVWAPHarness(t)

	for i := 0; i < 3; i++ {
		if s := h.step(flatBar(i, 100)); s != nil {
			t.Fatalf("bar %d: unexpected signal %+v", i, s)
		}
	}

	// vwap=100.5, upper=101.505, close 102 breaks above.
	s := h.step(flatBar(3, 102))
	if s == nil || s.Direction != sig.Long {
		t.Fatalf("expected LONG, got %+v", s)
	}
	if s.Price != 102 {
		t.Fatalf("price = %v, want 102", s.Price)
	}

	// Still above the band: no repeated signal while the state holds.
	if s := h.step(flatBar(4, 102)); s != nil {
		t.Fatalf("expected hold, got %+v", s)
	}

	// Reverts inside the band: back to flat.
	s = h.step(flatBar(5, 101))
	if s == nil || s.Direction != sig.Flat {
		t.Fatalf("expected FLAT, got %+v", s)
	}
}

func TestVWAPDeviationShortEntry(t *testing.T) {
	h := newVWAPHarness(t)

	for i := 0; i < 3; i++ {
		h.step(flatBar(i, 100))
	}

	// vwap=99.5, lower=98.505, close 98 breaks below.
	s := h.step(flatBar(3, 98))
	if s == nil || s.Direction != sig.Short {
		t.Fatalf("expected SHORT, got %+v", s)
	}
	if h.strat.(*VWAPDeviation).State() != sig.Short {
		t.Fatalf("state not SHORT after entry")
	}
}

func TestVWAPDeviationEmptyStreamErrors(t *testing.T) {
	h := newVWAPHarness(t)
	if _, err := h.strat.OnBar(h.view()); err == nil {
		t.Fatalf("expected insufficient data error on empty stream")
	}
}
