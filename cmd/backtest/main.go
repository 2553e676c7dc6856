package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/RomaKul/strategy-backtest/internal/backtest"
	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/dataload"
	"github.com/RomaKul/strategy-backtest/internal/metrics"
	"github.com/RomaKul/strategy-backtest/internal/runner"
	"github.com/RomaKul/strategy-backtest/internal/strategy"
	"github.com/RomaKul/strategy-backtest/internal/util"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to YAML config")
	dataPath := flag.String("data", "", "candle CSV, overrides data.csv_path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	csvPath := cfg.Data.CSVPath
	if *dataPath != "" {
		csvPath = *dataPath
	}
	candles, err := dataload.FromCSV(csvPath, cfg.Instrument.FastInterval.Std())
	if err != nil {
		log.Fatal().Err(err).Msg("load candles")
	}
	log.Info().Int("bars", len(candles)).Str("symbol", cfg.Instrument.Symbol).Msg("candles loaded")

	strategies, err := strategy.BuildAll(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build strategies")
	}

	ledger := backtest.NewLedger(len(candles))
	run := runner.New(log, cfg.Instrument, strategies, ledger)
	if err := backtest.Run(run, candles); err != nil {
		log.Fatal().Err(err).Msg("backtest halted")
	}

	for _, report := range backtest.BuildReport(ledger.Snapshot()) {
		log.Info().
			Str("strategy", report.Strategy).
			Int("trades", report.Trades).
			Str("win_rate", report.WinRate.StringFixed(4)).
			Str("total_return", report.TotalReturn.StringFixed(6)).
			Str("max_drawdown", report.MaxDrawdown.StringFixed(6)).
			Msg("backtest result")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
