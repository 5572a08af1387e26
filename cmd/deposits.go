package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fingest/networth"
	"github.com/google/subcommands"
)

// depositsCmd holds the flags for the 'deposits' subcommand.
type depositsCmd struct {
	statement string
}

func (*depositsCmd) Name() string     { return "deposits" }
func (*depositsCmd) Synopsis() string { return "list cash deposits and their running total" }
func (*depositsCmd) Usage() string {
	return `nws deposits -statement <file.xlsx>

  Lists every cash deposit recorded in the statement's activity, with the
  cumulative amount paid in.
`
}

func (c *depositsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "Broker statement export (.xlsx)")
}

func (c *depositsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.statement == "" {
		fmt.Fprintln(os.Stderr, "the -statement flag is required")
		return subcommands.ExitUsageError
	}

	stmt, err := networth.ReadStatement(c.statement)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", c.statement, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintln(&b, "# Deposits")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Date | Cumulative |")
	fmt.Fprintln(&b, "|:---|---:|")
	var total float64
	for on, v := range stmt.Deposits().Values() {
		total = v
		fmt.Fprintf(&b, "| %s | %s |\n", on, networth.USD(v))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", networth.USD(total))
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
