package strategy

import (
	"fmt"
	"strings"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/indicator"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// VWAPDeviation is a FLAT/LONG/SHORT state machine around the rolling VWAP.
// It goes long when the close breaks above vwap*(1+threshold), short below
// vwap*(1-threshold), and back to flat once price reverts inside the band.
// A signal is emitted only on a state transition.
type VWAPDeviation struct {
	threshold float64
	window    int
	reset     indicator.SessionReset
	state     sig.Direction
}

// NewVWAPDeviation validates the config slice and builds the strategy in its
// initial FLAT state.
func NewVWAPDeviation(cfg config.VWAP) (*VWAPDeviation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reset := indicator.ResetNone
	if strings.ToLower(cfg.SessionReset) == "daily" {
		reset = indicator.ResetDaily
	}
	return &VWAPDeviation{threshold: cfg.Threshold, window: cfg.Window, reset: reset}, nil
}

// Name returns the identifier used in decisions and logs.
func (s *VWAPDeviation) Name() string { return "vwap" }

// State exposes the current machine state for inspection in tests.
func (s *VWAPDeviation) State() sig.Direction { return s.state }

// OnBar applies the transition table to the newest close.
func (s *VWAPDeviation) OnBar(v View) (*sig.Signal, error) {
	window := v.Fast.Window(s.window)
	values, err := indicator.VWAP(window, s.reset)
	if err != nil {
		return nil, err
	}
	vwap := values[len(values)-1].Value
	bar := window[len(window)-1]

	next := s.state
	upper := vwap * (1 + s.threshold)
	lower := vwap * (1 - s.threshold)
	switch s.state {
	case sig.Flat:
		if bar.Close > upper {
			next = sig.Long
		} else if bar.Close < lower {
			next = sig.Short
		}
	default:
		if bar.Close >= lower && bar.Close <= upper {
			next = sig.Flat
		}
	}
	if next == s.state {
		return nil, nil
	}
	s.state = next
	return &sig.Signal{
		Strategy:  s.Name(),
		Symbol:    v.Fast.Symbol(),
		Direction: next,
		Price:     bar.Close,
		Reason:    fmt.Sprintf("close=%.8g vwap=%.8g", bar.Close, vwap),
		Ts:        bar.CloseTime,
	}, nil
}
