package backtest

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/RomaKul/strategy-backtest/internal/runner"
	sig "github.com/RomaKul/strategy-backtest/internal/signal"
)

// StrategyReport aggregates closed-trade performance for one strategy.
// Returns are fractions (0.05 = +5%); money math uses decimals so the report
// does not accumulate float drift over long runs.
type StrategyReport struct {
	Strategy    string
	Trades      int
	Wins        int
	WinRate     decimal.Decimal
	TotalReturn decimal.Decimal
	MaxDrawdown decimal.Decimal
}

type openTrade struct {
	direction sig.Direction
	entry     decimal.Decimal
}

// BuildReport replays the decision log per strategy: a direction change closes
// the open trade at the decision price and, for LONG/SHORT, opens the next one.
// Repeated identical directions are holds. Still-open trades are not counted.
func BuildReport(decisions []runner.Decision) []StrategyReport {
	byStrategy := make(map[string][]runner.Decision)
	for _, d := range decisions {
		byStrategy[d.Strategy] = append(byStrategy[d.Strategy], d)
	}

	names := make([]string, 0, len(byStrategy))
	for name := range byStrategy {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]StrategyReport, 0, len(names))
	for _, name := range names {
		reports = append(reports, buildOne(name, byStrategy[name]))
	}
	return reports
}

func buildOne(name string, decisions []runner.Decision) StrategyReport {
	report := StrategyReport{Strategy: name}
	one := decimal.NewFromInt(1)
	equity := one
	peak := one
	var open *openTrade

	for _, d := range decisions {
		dir := d.Signal.Direction
		price := decimal.NewFromFloat(d.Signal.Price)

		if open != nil && dir != open.direction {
			ret := tradeReturn(*open, price)
			report.Trades++
			if ret.IsPositive() {
				report.Wins++
			}
			equity = equity.Mul(one.Add(ret))
			if equity.GreaterThan(peak) {
				peak = equity
			} else if peak.IsPositive() {
				dd := peak.Sub(equity).Div(peak)
				if dd.GreaterThan(report.MaxDrawdown) {
					report.MaxDrawdown = dd
				}
			}
			open = nil
		}
		if dir != sig.Flat && open == nil {
			open = &openTrade{direction: dir, entry: price}
		}
	}

	report.TotalReturn = equity.Sub(one)
	if report.Trades > 0 {
		report.WinRate = decimal.NewFromInt(int64(report.Wins)).Div(decimal.NewFromInt(int64(report.Trades)))
	}
	return report
}

func tradeReturn(t openTrade, exit decimal.Decimal) decimal.Decimal {
	if t.entry.IsZero() {
		return decimal.Zero
	}
	ret := exit.Sub(t.entry).Div(t.entry)
	if t.direction == sig.Short {
		ret = ret.Neg()
	}
	return ret
}
