// Package strategy contains the per-bar signal generation logic.
package strategy

import (
	"github.com/RomaKul/strategy-backtest/internal/market"
	"github.com/RomaKul/strategy-backtest/internal/risk"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// View is the read-only market state handed to each evaluation: the fast stream
// the strategy runs on plus the slower stream reachable only through the aligner.
type View struct {
	Fast    *market.Stream
	Slow    *market.Stream
	Aligner *market.Aligner
}

// Strategy evaluates the newest closed bar of the fast stream. A nil signal
// means nothing to report this bar. Recoverable warm-up conditions surface as
// *indicator.InsufficientDataError or *market.NoAlignedBarError.
type Strategy interface {
	Name() string
	OnBar(v View) (*sig.Signal, error)
}

// BandProvider is implemented by strategies that hold protective risk bands,
// letting the runner snapshot the current levels alongside each decision.
type BandProvider interface {
	Band() (risk.Band, bool)
}
