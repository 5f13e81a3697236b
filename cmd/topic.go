package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finsec/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	raw bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "displays documentation topics" }
func (*topicCmd) Usage() string {
	return `finsec topic [-raw] [<topic>...]

  Without topic, lists the available topics. '*' displays them all.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		doc string
		err error
	)
	if f.NArg() == 0 {
		doc, err = docs.Get("readme")
	} else {
		doc, err = docs.Join(f.Args()...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Print(doc)
		return subcommands.ExitSuccess
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
