package renderer

import (
	"strings"
	"testing"

	"github.com/fingest/networth"
)

func TestRenderEvolution(t *testing.T) {
	r := &networth.EvolutionReport{
		Date:            "2024-06-28",
		Total:           networth.USD(12500.50),
		TotalInclClosed: networth.USD(13250.75),
		ClosedPositions: networth.USD(750.25),
		Deposits:        networth.USD(10000),
		PnL:             networth.USD(3250.75),
		Holdings: []networth.HoldingLine{
			{Instrument: "AAPL/USD", Value: networth.USD(8000)},
			{Instrument: "VWCE.DE/EUR", Value: networth.USD(4500.50)},
		},
	}

	out := RenderEvolution(r)
	for _, want := range []string{
		"# Net Worth on 2024-06-28",
		"| Deposits | $10,000.00 |",
		"| **P&L** | **+$3,250.75** |",
		"## Holdings",
		"| AAPL/USD | $8,000.00 |",
		"| VWCE.DE/EUR | $4,500.50 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEvolutionNoHoldings(t *testing.T) {
	out := RenderEvolution(&networth.EvolutionReport{Date: "2024-06-28"})
	if strings.Contains(out, "## Holdings") {
		t.Errorf("holdings section rendered without holdings:\n%s", out)
	}
	if strings.Contains(out, "error") {
		t.Errorf("template error:\n%s", out)
	}
}

func TestRenderGains(t *testing.T) {
	r := &networth.GainsReport{
		Unit: "m",
		Buckets: []networth.GainLine{
			{Label: "2024-03", Profit: networth.USD(120.50), Trades: 3},
			{Label: "2024-04", Profit: networth.USD(-40.25), Trades: 1},
		},
		Total:  networth.USD(80.25),
		Trades: 4,
	}

	out := RenderGains(r)
	for _, want := range []string{
		"# Realized Gains per Month",
		"| 2024-03 | +$120.50 | 3 |",
		"| 2024-04 | -$40.25 | 1 |",
		"| **Total** | **+$80.25** | **4** |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
