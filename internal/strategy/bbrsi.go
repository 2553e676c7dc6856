package strategy

import (
	"fmt"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/indicator"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// BBRSI is a long-only mean-reversion strategy: enter when the close sits below
// the lower Bollinger band while RSI is oversold, exit once the close clears
// the upper band with RSI overbought. Signals fire on transitions only.
type BBRSI struct {
	window     int
	std        float64
	rsiPeriod  int
	oversold   float64
	overbought float64
	inPosition bool
}

// NewBBRSI validates the config slice at construction.
func NewBBRSI(cfg config.BBRSI) (*BBRSI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BBRSI{
		window:     cfg.Window,
		std:        cfg.Std,
		rsiPeriod:  cfg.RSIPeriod,
		oversold:   cfg.OversoldBound,
		overbought: cfg.OverboughtBound,
	}, nil
}

// Name returns the identifier used in decisions and logs.
func (s *BBRSI) Name() string { return "bb_rsi" }

// OnBar evaluates the entry/exit conditions at the newest close.
func (s *BBRSI) OnBar(v View) (*sig.Signal, error) {
	candles := v.Fast.All()
	bands, err := indicator.Bollinger(candles, s.window, s.std)
	if err != nil {
		return nil, err
	}
	rsiValues, err := indicator.RSI(candles, s.rsiPeriod)
	if err != nil {
		return nil, err
	}
	band := bands[len(bands)-1]
	rsi := rsiValues[len(rsiValues)-1].Value
	bar := candles[len(candles)-1]

	if !s.inPosition && bar.Close < band.Lower && rsi < s.oversold {
		s.inPosition = true
		return &sig.Signal{
			Strategy:  s.Name(),
			Symbol:    v.Fast.Symbol(),
			Direction: sig.Long,
			Price:     bar.Close,
			Reason:    fmt.Sprintf("close=%.8g < lower=%.8g rsi=%.2f", bar.Close, band.Lower, rsi),
			Ts:        bar.CloseTime,
		}, nil
	}
	if s.inPosition && bar.Close > band.Upper && rsi > s.overbought {
		s.inPosition = false
		return &sig.Signal{
			Strategy:  s.Name(),
			Symbol:    v.Fast.Symbol(),
			Direction: sig.Flat,
			Price:     bar.Close,
			Reason:    fmt.Sprintf("close=%.8g > upper=%.8g rsi=%.2f", bar.Close, band.Upper, rsi),
			Ts:        bar.CloseTime,
		}, nil
	}
	return nil, nil
}
