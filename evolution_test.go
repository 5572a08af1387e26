package networth

import (
	"encoding/json"
	"testing"

	"github.com/fingest/networth/date"
)

func TestCombine(t *testing.T) {
	positions := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 10.0, "2024-01-03", 10.0, "2024-01-04", 10.0, "2024-01-05", 0.0),
	}
	prices := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 100.0, "2024-01-04", 110.0),
	}
	profit := hist(t, "2024-01-05", 100.0)
	deposits := hist(t, "2024-01-01", 1000.0)

	evo := combineUntil(positions, prices, profit, deposits, date.MustParse("2024-01-05"))

	// calendar starts at the earliest series point: the deposit
	if len(evo.Dates) != 5 || evo.Dates[0] != "2024-01-01" || evo.Dates[4] != "2024-01-05" {
		t.Fatalf("dates = %v", evo.Dates)
	}
	for name, values := range evo.Parts {
		if len(values) != len(evo.Dates) {
			t.Errorf("series %q has %d values for %d dates", name, len(values), len(evo.Dates))
		}
	}

	total := evo.Parts[SeriesTotal]
	// day 0: no position yet; day 1: 10*100; day 2: price carries forward;
	// day 3: 10*110; day 4: closed
	want := []float64{0, 1000, 1000, 1100, 0}
	for i := range want {
		if total[i] != want[i] {
			t.Errorf("Total[%d] = %v, want %v", i, total[i], want[i])
		}
	}

	if got := evo.Parts[SeriesTotalInclClosed][4]; got != 100 {
		t.Errorf("Total Incl. Closed on close day = %v, want 100", got)
	}
	if got := evo.Parts[SeriesPnL][4]; got != 100-1000 {
		t.Errorf("P&L = %v, want -900", got)
	}
	if got := evo.Parts[SeriesDeposits][4]; got != 1000 {
		t.Errorf("Deposits = %v, want 1000", got)
	}
}

func TestCombineDepositsOnly(t *testing.T) {
	deposits := hist(t, "2024-01-01", 1000.0)
	evo := combineUntil(nil, nil, new(date.History[float64]), deposits, date.MustParse("2024-01-03"))

	if len(evo.Dates) != 3 {
		t.Fatalf("dates = %v", evo.Dates)
	}
	for i, want := range []float64{1000, 1000, 1000} {
		if got := evo.Parts[SeriesDeposits][i]; got != want {
			t.Errorf("Deposits[%d] = %v, want %v", i, got, want)
		}
	}
	for i := range evo.Dates {
		if got := evo.Parts[SeriesPnL][i]; got != -1000 {
			t.Errorf("P&L[%d] = %v, want -1000", i, got)
		}
	}
}

func TestCombineSkipsUnpricedInstruments(t *testing.T) {
	positions := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 10.0),
		"GONE/EUR": hist(t, "2024-01-02", 5.0),
	}
	prices := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 100.0),
	}
	evo := combineUntil(positions, prices, new(date.History[float64]), new(date.History[float64]), date.MustParse("2024-01-02"))

	if _, ok := evo.Parts["GONE/EUR"]; ok {
		t.Error("unpriced instrument must not get a series")
	}
	if _, ok := evo.Parts["AAPL/USD"]; !ok {
		t.Error("priced instrument missing")
	}
}

func TestCombineEmpty(t *testing.T) {
	evo := Combine(nil, nil, new(date.History[float64]), new(date.History[float64]))
	if evo.Dates == nil || len(evo.Dates) != 0 {
		t.Errorf("empty evolution dates = %#v, want empty non-nil", evo.Dates)
	}
	if evo.Parts == nil || len(evo.Parts) != 0 {
		t.Errorf("empty evolution parts = %#v, want empty non-nil", evo.Parts)
	}
}

func TestEvolutionJSON(t *testing.T) {
	deposits := hist(t, "2024-01-01", 1000.0)
	evo := combineUntil(nil, nil, new(date.History[float64]), deposits, date.MustParse("2024-01-02"))

	raw, err := json.Marshal(evo)
	if err != nil {
		t.Fatal(err)
	}
	var back Evolution
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Dates) != 2 || back.Parts[SeriesDeposits][1] != 1000 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestSeriesNames(t *testing.T) {
	evo := &Evolution{Parts: map[string][]float64{
		SeriesTotal:           nil,
		SeriesPnL:             nil,
		SeriesDeposits:        nil,
		SeriesClosedPositions: nil,
		SeriesTotalInclClosed: nil,
		"ZZZ/USD":             nil,
		"AAPL/USD":            nil,
	}}
	names := evo.SeriesNames()
	want := []string{"AAPL/USD", "ZZZ/USD", SeriesClosedPositions, SeriesDeposits, SeriesTotal, SeriesTotalInclClosed, SeriesPnL}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestEvolutionReport(t *testing.T) {
	positions := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 10.0),
		"OLD/USD":  hist(t, "2024-01-02", 2.0, "2024-01-03", 0.0),
	}
	prices := map[InstrumentKey]*date.History[float64]{
		"AAPL/USD": hist(t, "2024-01-02", 100.0),
		"OLD/USD":  hist(t, "2024-01-02", 50.0),
	}
	deposits := hist(t, "2024-01-01", 500.0)
	evo := combineUntil(positions, prices, new(date.History[float64]), deposits, date.MustParse("2024-01-03"))

	r := evo.Report()
	if r.Date != "2024-01-03" {
		t.Errorf("report date = %q", r.Date)
	}
	if r.Total.String() != "$1,000.00" {
		t.Errorf("total = %s", r.Total)
	}
	if len(r.Holdings) != 1 || r.Holdings[0].Instrument != "AAPL/USD" {
		t.Errorf("holdings = %+v (closed-out instruments must be omitted)", r.Holdings)
	}
}
