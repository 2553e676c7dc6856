package strategy

import (
	"fmt"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/indicator"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// MultiMomentum combines a fast-timeframe RSI with the MACD histogram of the
// aligned slow timeframe. Long when RSI is oversold and the slow trend agrees
// (histogram above zero); short on the mirrored condition; flat otherwise.
// Unlike the state machines, it reports a direction on every evaluation and
// callers treat repeated identical signals as "hold".
type MultiMomentum struct {
	rsiPeriod  int
	oversold   float64
	overbought float64
	macdFast   int
	macdSlow   int
	macdSignal int
}

// NewMultiMomentum validates the config slice at construction.
func NewMultiMomentum(cfg config.Momentum) (*MultiMomentum, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MultiMomentum{
		rsiPeriod:  cfg.RSIPeriod,
		oversold:   cfg.OversoldBound,
		overbought: cfg.OverboughtBound,
		macdFast:   cfg.MACDFast,
		macdSlow:   cfg.MACDSlow,
		macdSignal: cfg.MACDSignal,
	}, nil
}

// Name returns the identifier used in decisions and logs.
func (s *MultiMomentum) Name() string { return "momentum" }

// OnBar evaluates both timeframes at the fast bar's close.
func (s *MultiMomentum) OnBar(v View) (*sig.Signal, error) {
	fast := v.Fast.All()
	rsiValues, err := indicator.RSI(fast, s.rsiPeriod)
	if err != nil {
		return nil, err
	}
	rsi := rsiValues[len(rsiValues)-1].Value
	bar := fast[len(fast)-1]

	// Only slow bars closed at or before this fast close may participate.
	_, closed, err := v.Aligner.AlignIndex(bar.CloseTime)
	if err != nil {
		return nil, err
	}
	macdValues, err := indicator.MACD(v.Slow.All()[:closed], s.macdFast, s.macdSlow, s.macdSignal)
	if err != nil {
		return nil, err
	}
	latest := macdValues[len(macdValues)-1]

	dir := sig.Flat
	if latest.Ready() {
		switch {
		case rsi < s.oversold && latest.Histogram > 0:
			dir = sig.Long
		case rsi > s.overbought && latest.Histogram < 0:
			dir = sig.Short
		}
	}
	return &sig.Signal{
		Strategy:  s.Name(),
		Symbol:    v.Fast.Symbol(),
		Direction: dir,
		Price:     bar.Close,
		Reason:    fmt.Sprintf("rsi=%.2f hist=%.8g", rsi, latest.Histogram),
		Ts:        bar.CloseTime,
	}, nil
}
