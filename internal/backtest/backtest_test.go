package backtest

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/RomaKul/strategy-backtest/internal/config"
	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/runner"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
	"github.com/RomaKul/strategy-backtest/internal/strategy"
)

func bar(i int, open, high, low, close float64) market.Candle {
	return market.Candle{
		OpenTime:  testEpoch.Add(time.Duration(i) * time.Minute),
		CloseTime: testEpoch.Add(time.Duration(i+1) * time.Minute),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1,
	}
}

func newBreakoutRunner(t *testing.T, sink runner.Sink) *runner.Runner {
	t.Helper()
	strat, err := strategy.NewATRBreakout(config.ATR{Period: 5, ChannelPeriod: 5, KStop: 2, KTarget: 4})
	require.NoError(t, err)
	inst := config.Instrument{
		Symbol:       "TESTUSDT",
		FastInterval: config.Duration(time.Minute),
		SlowInterval: config.Duration(5 * time.Minute),
	}
	return runner.New(zerolog.Nop(), inst, []strategy.Strategy{strat}, sink)
}

func TestRunRecordsDecisions(t *testing.T) {
	ledger := NewLedger(8)
	r := newBreakoutRunner(t, ledger)

	candles := []market.Candle{
		bar(0, 104, 105, 103, 104),
		bar(1, 104, 105, 103, 104),
		bar(2, 104, 105, 103, 104),
		bar(3, 104, 105, 103, 104),
		bar(4, 104, 105, 103, 104),
		bar(5, 104, 106, 104, 106), // breakout entry
	}
	require.NoError(t, Run(r, candles))

	decisions := ledger.Snapshot()
	require.Len(t, decisions, 1)
	require.Equal(t, sig.Long, decisions[0].Signal.Direction)
	require.NotNil(t, decisions[0].Band)
}

func TestRunReportsFailingBarIndex(t *testing.T) {
	r := newBreakoutRunner(t, NewLedger(0))

	candles := []market.Candle{
		bar(0, 104, 105, 103, 104),
		bar(0, 104, 105, 103, 104), // out of order
	}
	err := Run(r, candles)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bar 1")
}

func TestLedgerSnapshotIsACopy(t *testing.T) {
	ledger := NewLedger(2)
	ledger.Emit(runner.Decision{Strategy: "a"})
	ledger.Emit(runner.Decision{Strategy: "b"})

	snap := ledger.Snapshot()
	require.Len(t, snap, 2)
	snap[0].Strategy = "mutated"
	require.Equal(t, "a", ledger.Snapshot()[0].Strategy)

	ledger.Reset()
	require.Empty(t, ledger.Snapshot())
}
