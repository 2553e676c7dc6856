// Package runner orchestrates candle ingestion, indicator evaluation, and
// signal emission for one instrument.
package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/indicator"
	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/metrics"
	"github.com/RomaKul/strategy-backtest/internal/risk"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
	"github.com/RomaKul/strategy-backtest/internal/strategy"
)

// Decision is one emitted record: the signal plus an optional snapshot of the
// protective band that accompanied it.
type Decision struct {
	Ts       time.Time
	Symbol   string
	Strategy string
	Signal   sig.Signal
	Band     *risk.Band
}

// Sink consumes decisions; the execution or reporting collaborator sits behind it.
type Sink interface {
	Emit(Decision)
}

// Runner serializes bar delivery for a single instrument: exactly one
// evaluation is in flight at a time, so the strategies' state needs no locking.
type Runner struct {
	log        zerolog.Logger
	fast       *market.Stream
	slow       *market.Stream
	aligner    *market.Aligner
	aggregator *market.Aggregator
	strategies []strategy.Strategy
	sink       Sink
}

// New wires the streams for the configured instrument. Fast bars arrive via
// OnCandle; slow bars are aggregated from them internally.
func New(log zerolog.Logger, inst config.Instrument, strategies []strategy.Strategy, sink Sink) *Runner {
	var opts []market.StreamOption
	if inst.RejectGaps {
		opts = append(opts, market.WithGapPolicy(market.GapRejecting))
	}
	slow := market.NewStream(inst.Symbol, inst.SlowInterval.Std())
	return &Runner{
		log:        log.With().Str("symbol", inst.Symbol).Logger(),
		fast:       market.NewStream(inst.Symbol, inst.FastInterval.Std(), opts...),
		slow:       slow,
		aligner:    market.NewAligner(slow),
		aggregator: market.NewAggregator(inst.SlowInterval.Std()),
		strategies: strategies,
		sink:       sink,
	}
}

// Fast exposes the fast stream, mainly for tests.
func (r *Runner) Fast() *market.Stream { return r.fast }

// OnCandle ingests the next closed fast bar and runs every strategy against it.
// Invalid bars are logged, counted, and skipped; warm-up conditions skip the
// affected strategy for this bar; anything else halts the instrument.
func (r *Runner) OnCandle(c market.Candle) error {
	if err := r.fast.Append(c); err != nil {
		var invalid *market.InvalidCandleError
		if errors.As(err, &invalid) {
			r.log.Warn().Err(err).Time("open_time", c.OpenTime).Msg("candle rejected")
			metrics.CandlesRejected.WithLabelValues(r.fast.Symbol(), invalid.Reason).Inc()
			return nil
		}
		return fmt.Errorf("append fast candle: %w", err)
	}
	metrics.CandlesTotal.WithLabelValues(r.fast.Symbol(), r.fast.Interval().String()).Inc()

	if done, ok := r.aggregator.Add(c); ok {
		if err := r.slow.Append(done); err != nil {
			return fmt.Errorf("append slow candle: %w", err)
		}
		metrics.CandlesTotal.WithLabelValues(r.slow.Symbol(), r.slow.Interval().String()).Inc()
	}

	view := strategy.View{Fast: r.fast, Slow: r.slow, Aligner: r.aligner}
	for _, strat := range r.strategies {
		s, err := strat.OnBar(view)
		if err != nil {
			if recoverable(err) {
				metrics.EvaluationsSkipped.WithLabelValues(strat.Name()).Inc()
				r.log.Debug().Err(err).Str("strategy", strat.Name()).Msg("evaluation skipped")
				continue
			}
			return fmt.Errorf("%s evaluation: %w", strat.Name(), err)
		}
		if s == nil {
			continue
		}
		r.emit(strat, *s)
	}
	return nil
}

func (r *Runner) emit(strat strategy.Strategy, s sig.Signal) {
	d := Decision{Ts: s.Ts, Symbol: s.Symbol, Strategy: s.Strategy, Signal: s}
	if provider, ok := strat.(strategy.BandProvider); ok {
		if band, open := provider.Band(); open {
			d.Band = &band
		}
	}
	metrics.SignalsTotal.WithLabelValues(s.Strategy, s.Direction.String()).Inc()
	event := r.log.Info().
		Str("strategy", s.Strategy).
		Str("direction", s.Direction.String()).
		Float64("price", s.Price).
		Time("ts", s.Ts)
	if d.Band != nil {
		event = event.Float64("stop", d.Band.StopLoss).Float64("target", d.Band.TakeProfit)
	}
	event.Msg(s.Reason)
	if r.sink != nil {
		r.sink.Emit(d)
	}
}

func recoverable(err error) bool {
	var insufficient *indicator.InsufficientDataError
	var noAligned *market.NoAlignedBarError
	return errors.As(err, &insufficient) || errors.As(err, &noAligned)
}
