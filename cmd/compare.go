package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fingest/networth"
	"github.com/fingest/networth/yahoo"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	statement string
	symbol    string
	quiet     bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the account against an index" }
func (*compareCmd) Usage() string {
	return `nws compare -statement <file.xlsx> [-symbol ^GSPC]

  Simulates sending every deposit into a reference index instead of the
  account's actual trades, and reports both end values side by side.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "Broker statement export (.xlsx)")
	f.StringVar(&c.symbol, "symbol", "^GSPC", "Index symbol to simulate deposits into")
	f.BoolVar(&c.quiet, "q", false, "Do not print progress on stderr")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.statement == "" {
		fmt.Fprintln(os.Stderr, "the -statement flag is required")
		return subcommands.ExitUsageError
	}

	evo, status := runEvolution(ctx, c.statement, c.quiet)
	if status != subcommands.ExitSuccess {
		return status
	}

	simulated, err := networth.SimulateIndex(ctx, yahoo.New(), evo, c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating %q: %v\n", c.symbol, err)
		return subcommands.ExitFailure
	}

	last := len(evo.Dates) - 1
	if last < 0 {
		fmt.Fprintln(os.Stderr, "Error: empty evolution")
		return subcommands.ExitFailure
	}
	actual := networth.USD(evo.Parts[networth.SeriesTotalInclClosed][last])
	index := networth.USD(simulated[last])
	deposits := networth.USD(evo.Parts[networth.SeriesDeposits][last])

	var b strings.Builder
	fmt.Fprintf(&b, "# Account vs %s on %s\n\n", c.symbol, evo.Dates[last])
	fmt.Fprintln(&b, "| | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Deposits | %s |\n", deposits)
	fmt.Fprintf(&b, "| Account | %s |\n", actual)
	fmt.Fprintf(&b, "| %s | %s |\n", c.symbol, index)
	fmt.Fprintf(&b, "| **Difference** | **%s** |\n", actual.Sub(index).SignedString())
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
