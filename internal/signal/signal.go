// Package signal standardizes payloads shared between strategy and runner layers.
package signal

import "time"

// Direction enumerates the discrete position biases a strategy can express.
type Direction int

const (
	// Flat means no position (or close the open one).
	Flat Direction = iota
	// Long means a buy bias.
	Long
	// Short means a sell bias.
	Short
)

// String returns the canonical upper-case name used in logs and reports.
func (d Direction) String() string {
	switch d {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// Signal is one trading decision produced by a strategy evaluation.
type Signal struct {
	Strategy  string
	Symbol    string
	Direction Direction
	Price     float64 // close that produced the decision
	Reason    string
	Ts        time.Time
}
