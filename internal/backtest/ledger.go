// Package backtest replays historical candles through a runner and aggregates
// per-strategy performance.
package backtest

import (
	"sync"

	"github.com/RomaKul/strategy-backtest/internal/runner"
)

// Ledger stores emitted decisions in memory for post-run inspection. It
// implements runner.Sink.
type Ledger struct {
	mu        sync.Mutex
	decisions []runner.Decision
}

// NewLedger creates an empty ledger, optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{decisions: make([]runner.Decision, 0, capacity)}
}

// Emit appends a decision to the ledger.
func (l *Ledger) Emit(d runner.Decision) {
	l.mu.Lock()
	l.decisions = append(l.decisions, d)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded decisions.
func (l *Ledger) Snapshot() []runner.Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]runner.Decision, len(l.decisions))
	copy(out, l.decisions)
	return out
}

// Reset clears all stored decisions.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.decisions = l.decisions[:0]
	l.mu.Unlock()
}
