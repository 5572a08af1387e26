package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fingest/networth"
	"github.com/fingest/networth/renderer"
	"github.com/fingest/networth/task"
	"github.com/google/subcommands"
)

// evolutionCmd holds the flags for the 'evolution' subcommand.
type evolutionCmd struct {
	statement string
	jsonOut   bool
	quiet     bool
}

func (*evolutionCmd) Name() string     { return "evolution" }
func (*evolutionCmd) Synopsis() string { return "reconstruct the daily net-worth evolution" }
func (*evolutionCmd) Usage() string {
	return `nws evolution -statement <file.xlsx> [-json] [-q]

  Reads the broker statement export and reconstructs the account's daily
  net worth from the first activity to today: per-instrument values plus
  the Deposits, Closed Positions, Total and P&L series.

Usage Examples:
# Human readable report of the latest day.
$ nws evolution -statement statement.xlsx

# Full daily series as JSON, for plotting.
$ nws evolution -statement statement.xlsx -json > evolution.json

`
}

func (c *evolutionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "Broker statement export (.xlsx)")
	f.BoolVar(&c.jsonOut, "json", false, "Print the full daily series as JSON instead of a report")
	f.BoolVar(&c.quiet, "q", false, "Do not print progress on stderr")
}

func (c *evolutionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.statement == "" {
		fmt.Fprintln(os.Stderr, "the -statement flag is required")
		return subcommands.ExitUsageError
	}

	evo, status := runEvolution(ctx, c.statement, c.quiet)
	if status != subcommands.ExitSuccess {
		return status
	}

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(evo); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding evolution: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderEvolution(evo.Report()))
	return subcommands.ExitSuccess
}

// runEvolution runs the pipeline as a background task and mirrors its
// progress steps to stderr while polling.
func runEvolution(ctx context.Context, statement string, quiet bool) (*networth.Evolution, subcommands.ExitStatus) {
	pipeline, status := NewPipeline()
	if status != subcommands.ExitSuccess {
		return nil, status
	}

	manager := task.NewManager(1)
	defer manager.Close()

	id := manager.Submit(func(report func(string, int, int)) (any, error) {
		return pipeline.Evolution(ctx, statement, networth.ProgressFunc(report))
	})

	var lastStep int
	for {
		t, ok := manager.Get(id)
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: task lost")
			return nil, subcommands.ExitFailure
		}
		if !quiet && t.Progress.StepIndex > lastStep {
			lastStep = t.Progress.StepIndex
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", t.Progress.StepIndex, t.Progress.StepCount, t.Progress.StepName)
		}
		switch t.Status {
		case task.StatusCompleted:
			evo, ok := t.Result.(*networth.Evolution)
			if !ok {
				fmt.Fprintln(os.Stderr, "Error: unexpected task result")
				return nil, subcommands.ExitFailure
			}
			return evo, subcommands.ExitSuccess
		case task.StatusFailed:
			fmt.Fprintf(os.Stderr, "Error: %s\n", t.Err)
			return nil, subcommands.ExitFailure
		}
		time.Sleep(50 * time.Millisecond)
	}
}
