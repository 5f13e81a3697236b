package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finsec"
	"github.com/google/subcommands"
)

type getCmd struct {
	selector
	path string
}

func (*getCmd) Name() string     { return "get" }
func (*getCmd) Synopsis() string { return "extracts a field of securities with a JSONPath expression" }
func (*getCmd) Usage() string {
	return `finsec get -path <jsonpath> [-gsid <gsid> | -ticker <ticker>] <catalog.jsonl>

  Evaluates the JSONPath expression on the selected securities (all by
  default) and prints one result per line. Scalars are printed as is,
  other values as JSON.

Usage Examples:
$ finsec get -ticker SPY250620C00500000 -path '$.underlying_security.ticker' securities.jsonl
SPY
`
}

func (c *getCmd) SetFlags(f *flag.FlagSet) {
	c.selector.SetFlags(f)
	f.StringVar(&c.path, "path", "$", "JSONPath expression")
}

func (c *getCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input, ok := catalogArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	catalog, err := readCatalog(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	found, err := c.find(catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	for _, s := range found {
		if v, err := finsec.LookupString(s, c.path); err == nil {
			fmt.Println(v)
			continue
		}
		v, err := finsec.Lookup(s, c.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Println(string(data))
	}
	return status
}
