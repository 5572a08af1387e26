package networth

import (
	"sort"

	"github.com/fingest/networth/date"
)

// Names of the aggregate series in an Evolution, alongside one series per
// InstrumentKey.
const (
	SeriesClosedPositions = "Closed Positions"
	SeriesDeposits        = "Deposits"
	SeriesTotal           = "Total"             // still-open positions only
	SeriesTotalInclClosed = "Total Incl. Closed" // Total + realized profit
	SeriesPnL             = "P&L"               // Total Incl. Closed - Deposits
)

// Evolution is the final aggregate: an ordered daily calendar and, per
// series, one USD value per date. Every series spans the full calendar.
type Evolution struct {
	Dates []string             `json:"dates"`
	Parts map[string][]float64 `json:"parts"`
}

// SeriesNames returns the part names sorted, aggregates last.
func (e *Evolution) SeriesNames() []string {
	agg := map[string]int{
		SeriesClosedPositions: 1,
		SeriesDeposits:        2,
		SeriesTotal:           3,
		SeriesTotalInclClosed: 4,
		SeriesPnL:             5,
	}
	names := make([]string, 0, len(e.Parts))
	for name := range e.Parts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := agg[names[i]], agg[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

// Combine aligns position series, price series, the realized-profit curve
// and the deposit curve onto one daily calendar and sums per-instrument net
// values into the aggregate series.
//
// Instruments present in positions but absent from prices are silently
// excluded: a partial reconstruction beats none.
func Combine(positions, prices map[InstrumentKey]*date.History[float64], profit, deposits *date.History[float64]) *Evolution {
	return combineUntil(positions, prices, profit, deposits, date.Today())
}

// combineUntil is Combine with a pinned calendar end for tests.
func combineUntil(positions, prices map[InstrumentKey]*date.History[float64], profit, deposits *date.History[float64], today date.Date) *Evolution {
	// Instruments that can be valued.
	var keys []InstrumentKey
	for key, pos := range positions {
		if pos.Len() == 0 {
			continue
		}
		if price, ok := prices[key]; ok && price.Len() > 0 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	// Outer-join calendar: from the earliest point of any series to today.
	var start date.Date
	for _, key := range keys {
		first, _ := positions[key].First()
		start = date.Min(start, first)
	}
	if profit.Len() > 0 {
		first, _ := profit.First()
		start = date.Min(start, first)
	}
	if deposits.Len() > 0 {
		first, _ := deposits.First()
		start = date.Min(start, first)
	}
	if start.IsZero() {
		return &Evolution{Dates: []string{}, Parts: map[string][]float64{}}
	}
	rng := date.NewRange(start, today)
	n := rng.Len()

	evo := &Evolution{Dates: make([]string, 0, n), Parts: make(map[string][]float64)}
	for on := range rng.Days() {
		evo.Dates = append(evo.Dates, on.String())
	}

	total := make([]float64, n)
	for _, key := range keys {
		shares := positions[key].Dense(rng)
		closes := prices[key].Dense(rng) // forward-filled across non-trading days
		net := make([]float64, n)
		for i := range net {
			net[i] = shares[i] * closes[i]
			total[i] += net[i]
		}
		evo.Parts[string(key)] = net
	}

	realized := profit.Dense(rng)
	cash := deposits.Dense(rng)
	inclClosed := make([]float64, n)
	pnl := make([]float64, n)
	for i := range inclClosed {
		inclClosed[i] = total[i] + realized[i]
		pnl[i] = inclClosed[i] - cash[i]
	}

	evo.Parts[SeriesClosedPositions] = realized
	evo.Parts[SeriesDeposits] = cash
	evo.Parts[SeriesTotal] = total
	evo.Parts[SeriesTotalInclClosed] = inclClosed
	evo.Parts[SeriesPnL] = pnl
	return evo
}
