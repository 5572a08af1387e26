package networth

import (
	"testing"

	"github.com/fingest/networth/date"
)

func closedRow(closeDay, profit string) ClosedRow {
	return ClosedRow{CloseDate: date.MustParse(closeDay), Profit: dec(profit)}
}

func TestRealizedProfit(t *testing.T) {
	s := &Statement{Closed: []ClosedRow{
		closedRow("2024-03-15", "100"),
		closedRow("2024-01-10", "25.50"),
		closedRow("2024-03-15", "-10"), // same day, summed
	}}
	h := s.RealizedProfit()

	if got, _ := h.Get(date.MustParse("2024-01-10")); got != 25.50 {
		t.Errorf("profit on 2024-01-10 = %v, want 25.50", got)
	}
	if got, _ := h.Get(date.MustParse("2024-03-15")); got != 115.50 {
		t.Errorf("profit on 2024-03-15 = %v, want 115.50", got)
	}
	if h.Len() != 2 {
		t.Errorf("series has %d points, want 2", h.Len())
	}
}

func TestDeposits(t *testing.T) {
	s := &Statement{Activity: []ActivityRow{
		{Date: date.MustParse("2024-01-01"), Type: TypeDeposit, Amount: dec("1000")},
		{Date: date.MustParse("2024-02-01"), Type: TypeDeposit, Amount: dec("500")},
		{Date: date.MustParse("2024-02-01"), Type: TypeOpenPosition, Amount: dec("9999")},
	}}
	h := s.Deposits()
	if got, _ := h.Get(date.MustParse("2024-02-01")); got != 1500 {
		t.Errorf("cumulative deposits = %v, want 1500", got)
	}
}

func TestGains(t *testing.T) {
	s := &Statement{Closed: []ClosedRow{
		closedRow("2024-03-15", "100"),
		closedRow("2024-03-20", "-40"),
		closedRow("2024-04-01", "10"),
	}}

	monthly, err := s.Gains("m")
	if err != nil {
		t.Fatal(err)
	}
	if len(monthly) != 2 {
		t.Fatalf("got %d monthly buckets, want 2", len(monthly))
	}
	if monthly[0].Label != "2024-03" || !monthly[0].Profit.Equal(dec("60")) || monthly[0].Trades != 2 {
		t.Errorf("march bucket = %+v", monthly[0])
	}
	if monthly[1].Label != "2024-04" || monthly[1].Trades != 1 {
		t.Errorf("april bucket = %+v", monthly[1])
	}

	yearly, err := s.Gains("y")
	if err != nil {
		t.Fatal(err)
	}
	if len(yearly) != 1 || yearly[0].Label != "2024" || !yearly[0].Profit.Equal(dec("70")) {
		t.Errorf("yearly buckets = %+v", yearly)
	}

	if _, err := s.Gains("w"); err == nil {
		t.Error("want error for invalid unit")
	}
}

func TestGainsReport(t *testing.T) {
	s := &Statement{Closed: []ClosedRow{
		closedRow("2024-03-15", "100"),
		closedRow("2024-04-01", "-30"),
	}}
	r, err := s.GainsReport("m")
	if err != nil {
		t.Fatal(err)
	}
	if r.Trades != 2 || r.Total.String() != "$70.00" {
		t.Errorf("report = %+v", r)
	}
}
