package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// unformatted holds an option before its underlier, extra spaces and a blank line.
const unformatted = `{"ticker":"spy250620c00500000", "security_type":"AMERICAN_OPTION","gsid":3,"underlying_security":{"security_type":"ETP","gsid":2,"ticker":"SPY","primary_exc":"ARC","issuer":"State Street","description":"SPDR S&P 500 ETF","currency":{"security_type":"FIAT_CURRENCY","gsid":1,"ticker":"USD","nation":"United States"}},"callput":"call","strike":"500","expiry_date":"2025-06-20","primary_exc":"CBO","multiplier":100}

{"security_type":"FIAT_CURRENCY","gsid":1,"ticker":"usd","nation":"United States"}
`

// Helper function to create a temporary catalog file
func createTempCatalog(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "securities.jsonl")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return name
}

func runFmt(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	c := &fmtCmd{}
	f := flag.NewFlagSet("fmt", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestFmt_InPlace(t *testing.T) {
	t.Setenv("FINSEC_FORMAT", "")
	file := createTempCatalog(t, unformatted)

	if status := runFmt(t, file); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Failed to read formatted catalog: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3:\n%s", len(lines), got)
	}
	wantPrefixes := []string{
		`{"security_type":"FIAT_CURRENCY","gsid":1,`,
		`{"security_type":"ETP","currency":{`,
		`{"security_type":"AMERICAN_OPTION","callput":"CALL",`,
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %s\nwant prefix %s", i+1, lines[i], want)
		}
	}
	if !strings.Contains(lines[2], `"ticker":"SPY250620C00500000"`) {
		t.Errorf("option ticker is not normalized: %s", lines[2])
	}
}

func TestFmt_Idempotent(t *testing.T) {
	t.Setenv("FINSEC_FORMAT", "")
	file := createTempCatalog(t, unformatted)

	if status := runFmt(t, file); status != subcommands.ExitSuccess {
		t.Fatalf("first fmt: expected ExitSuccess, got %v", status)
	}
	first, _ := os.ReadFile(file)
	if status := runFmt(t, file); status != subcommands.ExitSuccess {
		t.Fatalf("second fmt: expected ExitSuccess, got %v", status)
	}
	second, _ := os.ReadFile(file)
	if string(first) != string(second) {
		t.Errorf("fmt is not idempotent.\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestFmt_YAML(t *testing.T) {
	file := createTempCatalog(t, unformatted)
	out := filepath.Join(t.TempDir(), "securities.yaml")

	if status := runFmt(t, "-format", "yaml", "-o", out, file); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if n := strings.Count(string(got), "---\n"); n != 2 {
		t.Errorf("Got %d document separators, want 2:\n%s", n, got)
	}
	if !strings.HasPrefix(string(got), "security_type: FIAT_CURRENCY\n") {
		t.Errorf("YAML output does not start with the currency:\n%s", got)
	}
}

func TestFmt_Errors(t *testing.T) {
	t.Setenv("FINSEC_FORMAT", "")
	tests := []struct {
		name    string
		content string
		args    []string
		want    subcommands.ExitStatus
	}{
		{"no file", "", nil, subcommands.ExitUsageError},
		{"unknown format", unformatted, []string{"-format", "xml"}, subcommands.ExitUsageError},
		{"invalid security", `{"security_type":"STOCK","gsid":1,"ticker":"X"}`, nil, subcommands.ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := tc.args
			if tc.content != "" {
				args = append(args, createTempCatalog(t, tc.content))
			}
			if got := runFmt(t, args...); got != tc.want {
				t.Errorf("Got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    subcommands.ExitStatus
	}{
		{"valid", unformatted, subcommands.ExitSuccess},
		{"invalid line", unformatted + `{"security_type":"BOGUS","gsid":9}` + "\n", subcommands.ExitFailure},
		{"conflicting gsid", unformatted + `{"security_type":"FIAT_CURRENCY","gsid":1,"ticker":"EUR","nation":"Europe"}` + "\n", subcommands.ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &validateCmd{}
			f := flag.NewFlagSet("validate", flag.ContinueOnError)
			c.SetFlags(f)
			if err := f.Parse([]string{createTempCatalog(t, tc.content)}); err != nil {
				t.Fatal(err)
			}
			if got := c.Execute(context.Background(), f); got != tc.want {
				t.Errorf("Got %v, want %v", got, tc.want)
			}
		})
	}
}
