// Command nws reconstructs an account's daily net-worth evolution from
// broker statement exports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fingest/networth/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Optional .env next to the binary, for proxy or cache settings.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion. It returns immediately unless the
// process was invoked by the shell's completion machinery.
func completion() {
	root := &complete.Command{
		Sub: map[string]*complete.Command{
			"evolution": {Flags: map[string]complete.Predictor{
				"statement": predict.Files("*.xlsx"),
				"json":      predict.Nothing,
				"q":         predict.Nothing,
			}},
			"deposits": {Flags: map[string]complete.Predictor{
				"statement": predict.Files("*.xlsx"),
			}},
			"gains": {Flags: map[string]complete.Predictor{
				"statement": predict.Files("*.xlsx"),
				"unit":      predict.Set{"d", "m", "y"},
			}},
			"compare": {Flags: map[string]complete.Predictor{
				"statement": predict.Files("*.xlsx"),
				"symbol":    predict.Nothing,
				"q":         predict.Nothing,
			}},
			"topic":   {},
		},
		Flags: map[string]complete.Predictor{
			"rules-file": predict.Files("*.yaml"),
		},
	}
	root.Complete("nws")
}
