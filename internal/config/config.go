// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigurationError reports an invalid parameter combination. Fatal: surfaced
// at construction time, never mid-stream.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Duration wraps time.Duration so YAML values like "1m" or "15m" decode directly.
type Duration time.Duration

// UnmarshalYAML parses the standard Go duration syntax.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// App captures process-wide runtime settings.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Instrument names the traded pair and the two sampling intervals the engine runs on.
type Instrument struct {
	Symbol       string   `yaml:"symbol"`
	FastInterval Duration `yaml:"fast_interval"`
	SlowInterval Duration `yaml:"slow_interval"`
	RejectGaps   bool     `yaml:"reject_gaps"`
}

// VWAP holds the deviation state-machine parameters.
type VWAP struct {
	Threshold    float64 `yaml:"threshold"`
	SessionReset string  `yaml:"session_reset"` // none or daily
	Window       int     `yaml:"window"`
}

// Momentum holds the multi-timeframe RSI+MACD parameters.
type Momentum struct {
	RSIPeriod       int     `yaml:"rsi_period"`
	OversoldBound   float64 `yaml:"oversold_bound"`
	OverboughtBound float64 `yaml:"overbought_bound"`
	MACDFast        int     `yaml:"macd_fast"`
	MACDSlow        int     `yaml:"macd_slow"`
	MACDSignal      int     `yaml:"macd_signal"`
}

// ATR holds the volatility-breakout and risk-band parameters.
type ATR struct {
	Period        int     `yaml:"period"`
	ChannelPeriod int     `yaml:"channel_period"`
	KStop         float64 `yaml:"k_stop"`
	KTarget       float64 `yaml:"k_target"`
}

// BBRSI holds the long-only Bollinger+RSI parameters.
type BBRSI struct {
	Window          int     `yaml:"window"`
	Std             float64 `yaml:"std"`
	RSIPeriod       int     `yaml:"rsi_period"`
	OversoldBound   float64 `yaml:"oversold_bound"`
	OverboughtBound float64 `yaml:"overbought_bound"`
}

// Data points the backtest entry point at its candle source.
type Data struct {
	CSVPath string `yaml:"csv_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App        App        `yaml:"app"`
	Instrument Instrument `yaml:"instrument"`
	Strategies []string   `yaml:"strategies"`
	VWAP       VWAP       `yaml:"vwap"`
	Momentum   Momentum   `yaml:"momentum"`
	ATR        ATR        `yaml:"atr"`
	BBRSI      BBRSI      `yaml:"bbrsi"`
	Data       Data       `yaml:"data"`
}

// Default returns the parameter set the original research used.
func Default() *Config {
	return &Config{
		App: App{Name: "strategy-backtest", Env: "dev", MetricsAddr: ":9109", LogLevel: "info"},
		Instrument: Instrument{
			Symbol:       "BTCUSDT",
			FastInterval: Duration(time.Minute),
			SlowInterval: Duration(15 * time.Minute),
		},
		Strategies: []string{"vwap", "momentum", "atr_breakout"},
		VWAP:       VWAP{Threshold: 0.02, SessionReset: "none", Window: 50},
		Momentum: Momentum{
			RSIPeriod: 14, OversoldBound: 30, OverboughtBound: 70,
			MACDFast: 12, MACDSlow: 26, MACDSignal: 9,
		},
		ATR:   ATR{Period: 14, ChannelPeriod: 20, KStop: 2, KTarget: 4},
		BBRSI: BBRSI{Window: 20, Std: 2, RSIPeriod: 14, OversoldBound: 30, OverboughtBound: 70},
	}
}

// Load reads a YAML file from disk, hydrates a Config on top of the defaults,
// and validates it.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects invalid parameter combinations before anything runs.
// Strategy constructors re-check their own slice of this surface so partial
// configs fail just as fast.
func (c *Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return &ConfigurationError{Field: "instrument.symbol", Reason: "must not be empty"}
	}
	if c.Instrument.FastInterval <= 0 {
		return &ConfigurationError{Field: "instrument.fast_interval", Reason: "must be positive"}
	}
	if c.Instrument.SlowInterval <= c.Instrument.FastInterval {
		return &ConfigurationError{Field: "instrument.slow_interval", Reason: "must exceed fast_interval"}
	}
	if err := c.VWAP.Validate(); err != nil {
		return err
	}
	if err := c.Momentum.Validate(); err != nil {
		return err
	}
	if err := c.ATR.Validate(); err != nil {
		return err
	}
	return c.BBRSI.Validate()
}

// Validate checks the VWAP strategy surface.
func (v VWAP) Validate() error {
	if v.Threshold <= 0 {
		return &ConfigurationError{Field: "vwap.threshold", Reason: "must be positive"}
	}
	if v.Window <= 0 {
		return &ConfigurationError{Field: "vwap.window", Reason: "must be positive"}
	}
	switch strings.ToLower(v.SessionReset) {
	case "", "none", "daily":
	default:
		return &ConfigurationError{Field: "vwap.session_reset", Reason: "must be none or daily"}
	}
	return nil
}

// Validate checks the momentum strategy surface.
func (m Momentum) Validate() error {
	if m.RSIPeriod <= 0 {
		return &ConfigurationError{Field: "momentum.rsi_period", Reason: "must be positive"}
	}
	if m.OversoldBound < 0 || m.OversoldBound > 100 {
		return &ConfigurationError{Field: "momentum.oversold_bound", Reason: "must be within [0,100]"}
	}
	if m.OverboughtBound < 0 || m.OverboughtBound > 100 {
		return &ConfigurationError{Field: "momentum.overbought_bound", Reason: "must be within [0,100]"}
	}
	if m.OversoldBound >= m.OverboughtBound {
		return &ConfigurationError{Field: "momentum.oversold_bound", Reason: "must be below overbought_bound"}
	}
	if m.MACDFast <= 0 || m.MACDSlow <= 0 || m.MACDSignal <= 0 {
		return &ConfigurationError{Field: "momentum.macd", Reason: "periods must be positive"}
	}
	if m.MACDFast >= m.MACDSlow {
		return &ConfigurationError{Field: "momentum.macd_fast", Reason: "must be below macd_slow"}
	}
	return nil
}

// Validate checks the breakout strategy surface.
func (a ATR) Validate() error {
	if a.Period <= 0 {
		return &ConfigurationError{Field: "atr.period", Reason: "must be positive"}
	}
	if a.ChannelPeriod <= 0 {
		return &ConfigurationError{Field: "atr.channel_period", Reason: "must be positive"}
	}
	if a.KStop <= 0 {
		return &ConfigurationError{Field: "atr.k_stop", Reason: "must be positive"}
	}
	if a.KTarget <= 0 {
		return &ConfigurationError{Field: "atr.k_target", Reason: "must be positive"}
	}
	return nil
}

// Validate checks the Bollinger+RSI surface.
func (b BBRSI) Validate() error {
	if b.Window <= 0 {
		return &ConfigurationError{Field: "bbrsi.window", Reason: "must be positive"}
	}
	if b.Std <= 0 {
		return &ConfigurationError{Field: "bbrsi.std", Reason: "must be positive"}
	}
	if b.RSIPeriod <= 0 {
		return &ConfigurationError{Field: "bbrsi.rsi_period", Reason: "must be positive"}
	}
	if b.OversoldBound >= b.OverboughtBound {
		return &ConfigurationError{Field: "bbrsi.oversold_bound", Reason: "must be below overbought_bound"}
	}
	return nil
}
