package strategy

import (
	"strings"

	"github.com/RomaKul/strategy-backtest/internal/config"
)

// Build returns the strategy implementation matching the configured mode.
// Unknown modes are a configuration error, surfaced before any bar is processed.
func Build(mode string, cfg *config.Config) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "vwap", "vwap_deviation":
		return NewVWAPDeviation(cfg.VWAP)
	case "momentum", "multi_momentum":
		return NewMultiMomentum(cfg.Momentum)
	case "atr", "atr_breakout":
		return NewATRBreakout(cfg.ATR)
	case "bbrsi", "bb_rsi":
		return NewBBRSI(cfg.BBRSI)
	default:
		return nil, &config.ConfigurationError{Field: "strategies", Reason: "unknown mode " + mode}
	}
}

// BuildAll resolves every configured mode, failing fast on the first bad one.
func BuildAll(cfg *config.Config) ([]Strategy, error) {
	out := make([]Strategy, 0, len(cfg.Strategies))
	for _, mode := range cfg.Strategies {
		s, err := Build(mode, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
