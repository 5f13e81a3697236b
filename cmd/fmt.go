package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finsec"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type fmtCmd struct {
	format     string
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats a catalog file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `finsec fmt [-format json|yaml] [-o <file>] <catalog.jsonl>

  Validates and formats the catalog file. This command decodes every
  security, checks it, and writes the catalog back with one canonical
  JSON object per line, dependencies first.
  By default, the file is formatted in-place. With -format yaml the
  catalog is exported as a YAML stream, to stdout unless -o is set.
  The default format can be set with the FINSEC_FORMAT environment variable.

Usage Examples:
# Formats the catalog in place.
$ finsec fmt securities.jsonl

# Exports the catalog as YAML.
$ finsec fmt -format yaml securities.jsonl
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.format, "format", "", "Output format: json or yaml (default $FINSEC_FORMAT or json)")
	f.StringVar(&p.outputFile, "o", "", `Output file, "-" for stdout. Defaults to the input file for json, stdout for yaml.`)
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input, ok := catalogArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	format := p.format
	if format == "" {
		format = os.Getenv("FINSEC_FORMAT")
	}
	if format == "" {
		format = "json"
	}

	catalog, err := readCatalog(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	output := p.outputFile
	switch format {
	case "json":
		if err := finsec.EncodeCatalog(&buf, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting catalog %q: %v\n", input, err)
			return subcommands.ExitFailure
		}
		if output == "" {
			output = input
		}
	case "yaml":
		for i, s := range catalog.All() {
			data, err := finsec.EncodeYAML(s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting security %q: %v\n", s.Ticker(), err)
				return subcommands.ExitFailure
			}
			if i > 0 {
				buf.WriteString("---\n")
			}
			buf.Write(data)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want json or yaml\n", format)
		return subcommands.ExitUsageError
	}

	if output == "" || output == "-" {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted catalog %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	logrus.WithFields(logrus.Fields{"file": output, "securities": catalog.Len()}).Info("catalog formatted")
	return subcommands.ExitSuccess
}
