// Package indicator provides pure, windowed technical-analysis computations.
// Every function is deterministic over its input window and parameters so that
// historical replay and live evaluation produce identical values.
package indicator

import (
	"fmt"
	"math"
	"time"
)

// Value is one indicator reading aligned to exactly one candle's close_time.
type Value struct {
	Timestamp time.Time
	Value     float64
}

// InsufficientDataError reports a window shorter than the indicator's warm-up.
// Recoverable: retry once more bars have closed.
type InsufficientDataError struct {
	Indicator string
	Needed    int
	Have      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need %d closed bars, have %d", e.Indicator, e.Needed, e.Have)
}

// ema computes an exponential moving average with smoothing 2/(n+1), seeded by
// the simple average of the first n values. Indices before the seed are NaN.
func ema(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if n <= 0 || len(values) < n {
		return out
	}
	var sum float64
	for _, v := range values[:n] {
		sum += v
	}
	out[n-1] = sum / float64(n)
	alpha := 2 / float64(n+1)
	for i := n; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
