package networth

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fingest/networth/date"
)

// This file derives the cash-side curves of a statement: realized profit to
// date, cumulative deposits, and the bucketed gains report.

// RealizedProfit returns the cumulative closed-position profit as a daily
// series: same-day profits are summed, then the running total is taken.
func (s *Statement) RealizedProfit() *date.History[float64] {
	daily := new(date.History[float64])
	for _, row := range s.Closed {
		daily.AppendAdd(row.CloseDate, row.Profit.InexactFloat64())
	}
	return runningTotal(daily)
}

// Deposits returns cumulative cash paid in, as a daily series.
func (s *Statement) Deposits() *date.History[float64] {
	daily := new(date.History[float64])
	for _, row := range s.Activity {
		if row.Type == TypeDeposit {
			daily.AppendAdd(row.Date, row.Amount.InexactFloat64())
		}
	}
	return runningTotal(daily)
}

// runningTotal replaces each daily value with the sum of all values up to and
// including that day.
func runningTotal(h *date.History[float64]) *date.History[float64] {
	out := new(date.History[float64])
	sum := 0.0
	for on, v := range h.Values() {
		sum += v
		out.Append(on, sum)
	}
	return out
}

// GainBucket aggregates closed-position profit over one calendar bucket.
type GainBucket struct {
	Label  string // "2024-06-03", "2024-06" or "2024" depending on the unit
	Profit decimal.Decimal
	Trades int
}

// Gains aggregates closed-position profit by calendar unit: "d" for day,
// "m" for month, "y" for year. Buckets are sorted chronologically; their
// labels sort lexicographically by construction.
func (s *Statement) Gains(unit string) ([]GainBucket, error) {
	var label func(date.Date) string
	switch unit {
	case "d":
		label = date.Date.String
	case "m":
		label = func(d date.Date) string { return fmt.Sprintf("%04d-%02d", d.Year(), d.Month()) }
	case "y":
		label = func(d date.Date) string { return fmt.Sprintf("%04d", d.Year()) }
	default:
		return nil, fmt.Errorf("invalid gains unit %q want d, m or y", unit)
	}

	byLabel := make(map[string]*GainBucket)
	for _, row := range s.Closed {
		l := label(row.CloseDate)
		b, ok := byLabel[l]
		if !ok {
			b = &GainBucket{Label: l}
			byLabel[l] = b
		}
		b.Profit = b.Profit.Add(row.Profit)
		b.Trades++
	}

	buckets := make([]GainBucket, 0, len(byLabel))
	for _, b := range byLabel {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Label < buckets[j].Label })
	return buckets, nil
}
