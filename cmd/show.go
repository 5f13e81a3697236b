package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finsec/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type showCmd struct {
	selector
	html bool
	raw  bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "displays securities of a catalog" }
func (*showCmd) Usage() string {
	return `finsec show [-gsid <gsid> | -ticker <ticker>] [-html | -raw] <catalog.jsonl>

  Renders the selected securities (all by default) as markdown, styled
  for the terminal. Use -html to produce an HTML fragment instead, or
  -raw to print the markdown source.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	c.selector.SetFlags(f)
	f.BoolVar(&c.html, "html", false, "Render as HTML")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	docs := make([]string, 0, len(found))
	for _, s := range found {
		docs = append(docs, renderer.Render(s))
	}
	doc := strings.Join(docs, "\n---\n\n")

	switch {
	case c.raw:
		fmt.Print(doc)
	case c.html:
		if err := printHTML(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	default:
		printMarkdown(doc)
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, or prints it as is if it cannot.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

func printHTML(doc string) error {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(doc), &buf); err != nil {
		return fmt.Errorf("cannot convert markdown to HTML: %w", err)
	}
	_, err := os.Stdout.Write(buf.Bytes())
	return err
}
