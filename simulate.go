package networth

import (
	"context"
	"fmt"

	"github.com/fingest/networth/date"
)

// SimulateIndex replays the account's deposits into a reference index: every
// cash-in buys index units at that day's close, and the returned series is
// the daily worth of the accumulated units. It answers "what if every
// deposit had gone into the index instead".
//
// The result is aligned on evo.Dates. Days without an index quote reuse the
// last known price; days before the first quote use the first one.
func SimulateIndex(ctx context.Context, market MarketData, evo *Evolution, symbol string) ([]float64, error) {
	deposits, ok := evo.Parts[SeriesDeposits]
	if !ok || len(evo.Dates) == 0 {
		return nil, fmt.Errorf("evolution has no deposit data")
	}

	first, err := date.Parse(evo.Dates[0])
	if err != nil {
		return nil, fmt.Errorf("invalid evolution date %q: %w", evo.Dates[0], err)
	}
	history, err := market.CloseHistory(ctx, symbol, first)
	if err != nil {
		return nil, fmt.Errorf("index history for %q: %w", symbol, err)
	}
	if history.Len() == 0 {
		return nil, fmt.Errorf("index history for %q: %w", symbol, ErrNoMarketData)
	}
	_, firstPrice := history.First()

	// Deposits carries the cumulative cash-in; recover daily inflows.
	inflow := make([]float64, len(deposits))
	inflow[0] = max(0, deposits[0])
	for i := 1; i < len(deposits); i++ {
		inflow[i] = max(0, deposits[i]-deposits[i-1])
	}

	values := make([]float64, len(evo.Dates))
	units := 0.0
	for i, str := range evo.Dates {
		on, err := date.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid evolution date %q: %w", str, err)
		}
		price, ok := history.ValueAsOf(on)
		if !ok {
			price = firstPrice // before the first quote, back-fill
		}
		if price > 0 && inflow[i] > 0 {
			units += inflow[i] / price
		}
		values[i] = units * price
	}
	return values, nil
}
