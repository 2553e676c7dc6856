package backtest

import (
	"fmt"

	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/runner"
)

// Run feeds the candle slice through the runner in order. The replay is
// bar-for-bar identical to live delivery, which is what makes backtest and
// live decisions comparable.
func Run(r *runner.Runner, candles []market.Candle) error {
	for i, c := range candles {
		if err := r.OnCandle(c); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
	}
	return nil
}
