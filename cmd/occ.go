package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finsec"
	"github.com/etnz/finsec/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type occCmd struct {
	parse   string
	root    string
	expiry  string
	callPut string
	strike  string
}

func (*occCmd) Name() string     { return "occ" }
func (*occCmd) Synopsis() string { return "formats or parses OCC option symbols" }
func (*occCmd) Usage() string {
	return `finsec occ -parse <symbol>
finsec occ -root <root> -expiry <YYYY-MM-DD> -type <call|put> -strike <strike>

  Decodes an OCC (OSI) option symbol, or builds one from its parts.

Usage Examples:
$ finsec occ -root SPY -expiry 2012-11-17 -type call -strike 140
SPY121117C00140000
`
}

func (c *occCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.parse, "parse", "", "OCC symbol to decode")
	f.StringVar(&c.root, "root", "", "Underlying root symbol")
	f.StringVar(&c.expiry, "expiry", "", "Expiry date")
	f.StringVar(&c.callPut, "type", "", "call or put")
	f.StringVar(&c.strike, "strike", "", "Strike price")
}

func (c *occCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.parse != "" {
		s, err := finsec.ParseOCC(c.parse)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("root:   %s\nexpiry: %s\ntype:   %s\nstrike: %s\n", s.Root, s.Expiry, s.Type, s.Strike)
		return subcommands.ExitSuccess
	}

	expiry, err := date.Parse(c.expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	t, err := finsec.ParseOptionType(c.callPut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	strike, err := decimal.NewFromString(c.strike)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid strike %q: %v\n", c.strike, err)
		return subcommands.ExitUsageError
	}
	symbol, err := finsec.FormatOCC(c.root, expiry, t, strike)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(symbol)
	return subcommands.ExitSuccess
}
