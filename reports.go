package networth

import (
	"sort"

	"github.com/shopspring/decimal"
)

// EvolutionReport is the latest-day snapshot of an Evolution, shaped for
// rendering.
type EvolutionReport struct {
	Date            string
	Total           Money
	TotalInclClosed Money
	ClosedPositions Money
	Deposits        Money
	PnL             Money
	Holdings        []HoldingLine
}

// HoldingLine is one valued instrument on the report date.
type HoldingLine struct {
	Instrument string
	Value      Money
}

// Report snapshots the last day of the evolution. Instruments whose value
// rounds to zero on that day (long closed) are left out of the holdings
// table; they still contribute to the realized series.
func (e *Evolution) Report() *EvolutionReport {
	r := &EvolutionReport{}
	last := len(e.Dates) - 1
	if last < 0 {
		return r
	}
	r.Date = e.Dates[last]

	at := func(name string) Money {
		values, ok := e.Parts[name]
		if !ok || len(values) <= last {
			return USD(0)
		}
		return USD(values[last])
	}
	r.Total = at(SeriesTotal)
	r.TotalInclClosed = at(SeriesTotalInclClosed)
	r.ClosedPositions = at(SeriesClosedPositions)
	r.Deposits = at(SeriesDeposits)
	r.PnL = at(SeriesPnL)

	aggregates := map[string]bool{
		SeriesClosedPositions: true,
		SeriesDeposits:        true,
		SeriesTotal:           true,
		SeriesTotalInclClosed: true,
		SeriesPnL:             true,
	}
	for name, values := range e.Parts {
		if aggregates[name] || len(values) <= last {
			continue
		}
		value := USD(values[last])
		if value.IsZero() {
			continue
		}
		r.Holdings = append(r.Holdings, HoldingLine{Instrument: name, Value: value})
	}
	sort.Slice(r.Holdings, func(i, j int) bool {
		return r.Holdings[i].Value.AsFloat() > r.Holdings[j].Value.AsFloat()
	})
	return r
}

// GainsReport is the bucketed closed-position profit, shaped for rendering.
type GainsReport struct {
	Unit    string
	Buckets []GainLine
	Total   Money
	Trades  int
}

// GainLine is one calendar bucket of the gains report.
type GainLine struct {
	Label  string
	Profit Money
	Trades int
}

// GainsReport aggregates the statement's closed positions by calendar unit.
func (s *Statement) GainsReport(unit string) (*GainsReport, error) {
	buckets, err := s.Gains(unit)
	if err != nil {
		return nil, err
	}
	r := &GainsReport{Unit: unit}
	total := decimal.Decimal{}
	for _, b := range buckets {
		r.Buckets = append(r.Buckets, GainLine{Label: b.Label, Profit: M(b.Profit, "USD"), Trades: b.Trades})
		total = total.Add(b.Profit)
		r.Trades += b.Trades
	}
	r.Total = M(total, "USD")
	return r, nil
}
