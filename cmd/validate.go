package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finsec"
	"github.com/google/subcommands"
)

type validateCmd struct{}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "checks every security of a catalog file" }
func (*validateCmd) Usage() string {
	return `finsec validate <catalog.jsonl>

  Decodes every line of the catalog and reports all the errors found,
  one per line, as file:line: message.
`
}

func (*validateCmd) SetFlags(f *flag.FlagSet) {}

func (*validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input, ok := catalogArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	r, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	catalog := finsec.NewCatalog()
	failures := 0
	err = lines(r, func(n int, line []byte) {
		s, err := finsec.DecodeText(line)
		if err == nil {
			err = catalog.Add(s)
		}
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", input, n, err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d invalid securities in %s\n", failures, input)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %d securities OK\n", input, catalog.Len())
	return subcommands.ExitSuccess
}
