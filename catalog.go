package finsec

import (
	"bufio"
	"bytes"
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
)

// Catalog indexes securities by GSID and by ticker.
//
// A Catalog is not safe for concurrent mutation.
type Catalog struct {
	securities map[GSID]Security
	tickers    map[string]GSID
}

// NewCatalog returns a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		securities: make(map[GSID]Security),
		tickers:    make(map[string]GSID),
	}
}

// Add registers s, its underliers and the currencies they are denominated in. Registering a
// security Identical to the one already known under the same GSID is a no-op.
//
// It fails with ErrCatalogConflict if a GSID is already bound to a different security or a
// ticker to another GSID of the same security type.
func (c *Catalog) Add(s Security) error {
	if s == nil {
		return fmt.Errorf("cannot add a nil security")
	}
	// the whole closure is checked before anything is inserted
	var pending []Security
	gsids := make(map[GSID]Security)
	tickers := make(map[string]GSID)
	var visit func(Security) error
	visit = func(s Security) error {
		for _, dep := range dependencies(s) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		prev, ok := c.securities[s.GSID()]
		if !ok {
			prev, ok = gsids[s.GSID()]
		}
		if ok {
			if !Identical(prev, s) {
				return fmt.Errorf("%w: gsid %v is already %s %s", ErrCatalogConflict, s.GSID(), prev.Type(), prev.Ticker())
			}
			return nil
		}
		key := tickerKey(s)
		g, ok := c.tickers[key]
		if !ok {
			g, ok = tickers[key]
		}
		if ok {
			return fmt.Errorf("%w: %s %s is already gsid %v", ErrCatalogConflict, s.Type(), s.Ticker(), g)
		}
		gsids[s.GSID()] = s
		tickers[key] = s.GSID()
		pending = append(pending, s)
		return nil
	}
	if err := visit(s); err != nil {
		return err
	}
	for _, p := range pending {
		c.securities[p.GSID()] = p
		c.tickers[tickerKey(p)] = p.GSID()
	}
	return nil
}

// Has returns true if a security is registered under gsid.
func (c *Catalog) Has(gsid GSID) bool {
	_, ok := c.securities[gsid]
	return ok
}

// Get returns the security registered under gsid, or nil.
func (c *Catalog) Get(gsid GSID) Security { return c.securities[gsid] }

// Lookup returns the securities with that ticker, one per security type at most, in GSID
// order.
func (c *Catalog) Lookup(ticker string) []Security {
	ticker = normalizeTicker(ticker)
	var found []Security
	for _, t := range securityTypes {
		if g, ok := c.tickers[string(t)+":"+ticker]; ok {
			found = append(found, c.securities[g])
		}
	}
	slices.SortFunc(found, func(a, b Security) int { return cmp.Compare(a.GSID(), b.GSID()) })
	return found
}

// Find returns the security of type t with that ticker, or nil.
func (c *Catalog) Find(t SecurityType, ticker string) Security {
	g, ok := c.tickers[string(t)+":"+normalizeTicker(ticker)]
	if !ok {
		return nil
	}
	return c.securities[g]
}

// Len returns the number of registered securities.
func (c *Catalog) Len() int { return len(c.securities) }

// All returns every security in GSID order.
func (c *Catalog) All() []Security {
	all := make([]Security, 0, len(c.securities))
	for _, g := range slices.Sorted(maps.Keys(c.securities)) {
		all = append(all, c.securities[g])
	}
	return all
}

// tickerKey scopes a ticker by security type: a stock and an index can share "SPX".
func tickerKey(s Security) string { return string(s.Type()) + ":" + s.Ticker() }

// dependencies returns the securities s is defined on.
func dependencies(s Security) []Security {
	var deps []Security
	if cur := s.Currency(); cur != nil {
		deps = append(deps, cur)
	}
	if u := s.Underlier(); u != nil {
		deps = append(deps, u)
	}
	return deps
}

// rank is 0 for securities with no dependencies, and one more than their highest dependency
// otherwise.
func rank(s Security) int {
	r := 0
	for _, dep := range dependencies(s) {
		r = max(r, rank(dep)+1)
	}
	return r
}

// EncodeCatalog writes c as JSONL, one canonical security per line. Dependencies are written
// before the securities defined on them, then securities are in GSID order.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	all := c.All()
	slices.SortStableFunc(all, func(a, b Security) int { return cmp.Compare(rank(a), rank(b)) })
	for _, s := range all {
		data, err := EncodeText(s)
		if err != nil {
			return fmt.Errorf("persist error: cannot encode security %q: %w", s.Ticker(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("persist error: cannot write: %w", err)
		}
	}
	return nil
}

// DecodeCatalog reads a JSONL stream written by EncodeCatalog. Blank lines are skipped.
// filename is for error messages only.
func DecodeCatalog(filename string, r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		s, err := DecodeText(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
		}
		if err := c.Add(s); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logrus.WithFields(logrus.Fields{"file": filename, "lines": n, "securities": c.Len()}).Debug("catalog loaded")
	return c, nil
}
