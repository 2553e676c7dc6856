package strategy

import (
	"fmt"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/indicator"
	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/risk"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// ATRBreakout enters on a close beyond the prior channel_period high/low and
// hands the open position to a risk.Manager for ATR-scaled stop/target
// tracking. At most one position is open per instrument; no new entries are
// considered while a band exists.
type ATRBreakout struct {
	atrPeriod     int
	channelPeriod int
	bands         *risk.Manager
}

// NewATRBreakout validates the config slice and wires the band manager.
func NewATRBreakout(cfg config.ATR) (*ATRBreakout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bands, err := risk.NewManager(cfg.KStop, cfg.KTarget)
	if err != nil {
		return nil, err
	}
	return &ATRBreakout{atrPeriod: cfg.Period, channelPeriod: cfg.ChannelPeriod, bands: bands}, nil
}

// Name returns the identifier used in decisions and logs.
func (s *ATRBreakout) Name() string { return "atr_breakout" }

// Band exposes the open risk band, if any, for runner snapshots.
func (s *ATRBreakout) Band() (risk.Band, bool) { return s.bands.Band() }

// OnBar first resolves the open band (exit or trail), then looks for a fresh
// breakout entry when flat.
func (s *ATRBreakout) OnBar(v View) (*sig.Signal, error) {
	candles := v.Fast.All()
	if len(candles) < s.channelPeriod+1 {
		return nil, &indicator.InsufficientDataError{
			Indicator: "breakout channel", Needed: s.channelPeriod + 1, Have: len(candles),
		}
	}
	bar := candles[len(candles)-1]

	if band, open := s.bands.Band(); open {
		if reason, exited := s.bands.CheckExit(bar); exited {
			return &sig.Signal{
				Strategy:  s.Name(),
				Symbol:    v.Fast.Symbol(),
				Direction: sig.Flat,
				Price:     bar.Close,
				Reason:    fmt.Sprintf("exit %s (stop=%.8g target=%.8g)", reason, band.StopLoss, band.TakeProfit),
				Ts:        bar.CloseTime,
			}, nil
		}
		atr, err := s.latestATR(candles)
		if err != nil {
			// Keep the existing levels when ATR cannot be recomputed yet.
			return nil, err
		}
		s.bands.Trail(bar.Close, atr)
		return nil, nil
	}

	// Channel over the bars preceding the one being evaluated.
	prior := candles[len(candles)-1-s.channelPeriod : len(candles)-1]
	hi, lo := prior[0].High, prior[0].Low
	for _, c := range prior[1:] {
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}

	var dir sig.Direction
	switch {
	case bar.Close > hi:
		dir = sig.Long
	case bar.Close < lo:
		dir = sig.Short
	default:
		return nil, nil
	}

	atr, err := s.latestATR(candles)
	if err != nil {
		return nil, err
	}
	band, err := s.bands.Open(dir, bar.Close, atr)
	if err != nil {
		return nil, err
	}
	return &sig.Signal{
		Strategy:  s.Name(),
		Symbol:    v.Fast.Symbol(),
		Direction: dir,
		Price:     bar.Close,
		Reason:    fmt.Sprintf("channel=[%.8g,%.8g] stop=%.8g target=%.8g", lo, hi, band.StopLoss, band.TakeProfit),
		Ts:        bar.CloseTime,
	}, nil
}

func (s *ATRBreakout) latestATR(candles []market.Candle) (float64, error) {
	values, err := indicator.ATR(candles, s.atrPeriod)
	if err != nil {
		return 0, err
	}
	return values[len(values)-1].Value, nil
}
