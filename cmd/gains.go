package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fingest/networth"
	"github.com/fingest/networth/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	statement string
	unit      string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains bucketed by day, month or year" }
func (*gainsCmd) Usage() string {
	return `nws gains -statement <file.xlsx> [-unit d|m|y]

  Aggregates the statement's closed positions into calendar buckets and
  reports the realized profit and trade count per bucket.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "Broker statement export (.xlsx)")
	f.StringVar(&c.unit, "unit", "m", "Bucket unit: d (day), m (month) or y (year)")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.statement == "" {
		fmt.Fprintln(os.Stderr, "the -statement flag is required")
		return subcommands.ExitUsageError
	}

	stmt, err := networth.ReadStatement(c.statement)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", c.statement, err)
		return subcommands.ExitFailure
	}

	report, err := stmt.GainsReport(c.unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.RenderGains(report))
	return subcommands.ExitSuccess
}
