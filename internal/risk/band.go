// Package risk tracks protective price levels for the one open position an
// instrument may hold at a time.
package risk

import (
	"fmt"
	"math"

	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/signal"
)

// Band is the stop-loss/take-profit pair guarding an open position. It exists
// only while the position is open.
type Band struct {
	Direction  signal.Direction
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
}

// ExitReason names what closed a band.
type ExitReason string

const (
	// ExitStop means the protective stop was touched.
	ExitStop ExitReason = "stop"
	// ExitTarget means the take-profit level was reached.
	ExitTarget ExitReason = "target"
	// ExitSignal means an opposing strategy signal closed the position.
	ExitSignal ExitReason = "signal"
)

// Manager owns at most one Band per instrument and applies the tighten-only
// trailing rule. It is single-writer state: one evaluation stream per instrument.
type Manager struct {
	kStop   float64
	kTarget float64
	band    *Band
}

// NewManager validates the ATR multipliers and returns an empty manager.
func NewManager(kStop, kTarget float64) (*Manager, error) {
	if kStop <= 0 {
		return nil, fmt.Errorf("risk: k_stop must be positive, got %v", kStop)
	}
	if kTarget <= 0 {
		return nil, fmt.Errorf("risk: k_target must be positive, got %v", kTarget)
	}
	return &Manager{kStop: kStop, kTarget: kTarget}, nil
}

// Open creates the band for a fresh entry. At most one position per instrument:
// opening while a band exists is a programming error and is rejected.
func (m *Manager) Open(dir signal.Direction, entry, atr float64) (Band, error) {
	if m.band != nil {
		return Band{}, fmt.Errorf("risk: band already open")
	}
	if dir != signal.Long && dir != signal.Short {
		return Band{}, fmt.Errorf("risk: cannot open %s band", dir)
	}
	b := Band{Direction: dir, EntryPrice: entry}
	if dir == signal.Long {
		b.StopLoss = entry - m.kStop*atr
		b.TakeProfit = entry + m.kTarget*atr
	} else {
		b.StopLoss = entry + m.kStop*atr
		b.TakeProfit = entry - m.kTarget*atr
	}
	m.band = &b
	return b, nil
}

// Band returns a copy of the open band, if any.
func (m *Manager) Band() (Band, bool) {
	if m.band == nil {
		return Band{}, false
	}
	return *m.band, true
}

// CheckExit tests the bar against the open band using the levels as they stood
// before this bar. When both stop and target fall inside one OHLC bar the stop
// is assumed to trigger first (worst-case ordering; intrabar tick order is not
// recoverable from bars). The band is destroyed on exit.
func (m *Manager) CheckExit(c market.Candle) (ExitReason, bool) {
	if m.band == nil {
		return "", false
	}
	b := m.band
	if b.Direction == signal.Long {
		if c.Low <= b.StopLoss {
			m.band = nil
			return ExitStop, true
		}
		if c.High >= b.TakeProfit {
			m.band = nil
			return ExitTarget, true
		}
	} else {
		if c.High >= b.StopLoss {
			m.band = nil
			return ExitStop, true
		}
		if c.Low <= b.TakeProfit {
			m.band = nil
			return ExitTarget, true
		}
	}
	return "", false
}

// Trail recomputes the candidate levels from the latest close and ATR and
// applies them only when they tighten toward price. Stops are monotone: a long
// stop never decreases, a short stop never increases, and targets never widen.
func (m *Manager) Trail(close, atr float64) (Band, bool) {
	if m.band == nil {
		return Band{}, false
	}
	b := m.band
	if b.Direction == signal.Long {
		b.StopLoss = math.Max(b.StopLoss, close-m.kStop*atr)
		b.TakeProfit = math.Min(b.TakeProfit, close+m.kTarget*atr)
	} else {
		b.StopLoss = math.Min(b.StopLoss, close+m.kStop*atr)
		b.TakeProfit = math.Max(b.TakeProfit, close-m.kTarget*atr)
	}
	return *b, true
}

// Close discards the band on an opposing signal.
func (m *Manager) Close() { m.band = nil }
