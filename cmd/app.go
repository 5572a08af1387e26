// Package cmd implements the CLI application to reconstruct an account's
// net-worth evolution from broker statement exports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/fingest/networth"
	"github.com/fingest/networth/yahoo"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&evolutionCmd{},
	&gainsCmd{},
	&depositsCmd{},
	&compareCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var rulesFile = flag.String("rules-file", "", "Path to a YAML symbol-rules file overriding the built-in table")

// LoadRules returns the built-in rule table, overlaid with the -rules-file
// content when the flag is set.
func LoadRules() (networth.RuleTable, error) {
	rules := networth.DefaultRules()
	if *rulesFile == "" {
		return rules, nil
	}
	override, err := networth.LoadRulesFile(*rulesFile)
	if err != nil {
		return networth.RuleTable{}, fmt.Errorf("loading rules %q: %w", *rulesFile, err)
	}
	return rules.Merge(override), nil
}

// NewPipeline builds the default pipeline: Yahoo market data plus the
// effective rule table.
func NewPipeline() (*networth.Pipeline, subcommands.ExitStatus) {
	rules, err := LoadRules()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitUsageError
	}
	return &networth.Pipeline{Market: yahoo.New(), Rules: rules}, subcommands.ExitSuccess
}
