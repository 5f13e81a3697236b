// Package cmd implements the finsec command line application.
package cmd

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/finsec"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fmtCmd{}, "catalog")
	c.Register(&validateCmd{}, "catalog")
	c.Register(&showCmd{}, "catalog")
	c.Register(&getCmd{}, "catalog")

	c.Register(&occCmd{}, "symbology")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var verbose = flag.Bool("v", false, "Log debug messages")
var logFile = flag.String("log-file", "", "Write logs to this file, rotated, instead of stderr")

// readCatalog decodes the catalog file, "-" for stdin.
func readCatalog(filename string) (*finsec.Catalog, error) {
	if filename == "-" {
		return finsec.DecodeCatalog("stdin", os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return finsec.DecodeCatalog(filename, f)
}

// catalogArg returns the single catalog file argument.
func catalogArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one catalog file is required.")
		return "", false
	}
	return f.Arg(0), true
}

// selector picks a security in a catalog by gsid or by ticker.
type selector struct {
	gsid   string
	ticker string
}

func (s *selector) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.gsid, "gsid", "", "GSID of the security")
	f.StringVar(&s.ticker, "ticker", "", "Ticker of the security")
}

// find returns the selected securities. With no selection, every security is returned.
func (s *selector) find(c *finsec.Catalog) ([]finsec.Security, error) {
	switch {
	case s.gsid != "" && s.ticker != "":
		return nil, fmt.Errorf("-gsid and -ticker are mutually exclusive")
	case s.gsid != "":
		v, err := strconv.ParseInt(s.gsid, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gsid %q: %w", s.gsid, err)
		}
		sec := c.Get(finsec.GSID(v))
		if sec == nil {
			return nil, fmt.Errorf("no security with gsid %d", v)
		}
		return []finsec.Security{sec}, nil
	case s.ticker != "":
		found := c.Lookup(s.ticker)
		if len(found) == 0 {
			return nil, fmt.Errorf("no security with ticker %q", s.ticker)
		}
		return found, nil
	default:
		return c.All(), nil
	}
}

// lines calls fn for every non blank line of r, with its 1-based number.
func lines(r io.Reader, fn func(n int, line []byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		fn(n, line)
	}
	return scanner.Err()
}
