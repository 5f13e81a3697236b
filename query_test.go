package finsec

import (
	"testing"
)

func TestLookupString(t *testing.T) {
	tests := []struct {
		s    Security
		path string
		want string
	}{
		{spyCall, "$.ticker", "SPY250620C00500000"},
		{spyCall, "$.underlying_security.ticker", "SPY"},
		{spyCall, "$.underlying_security.currency.nation", "United States"},
		{spyCall, "$.gsid", "30"},
		{aapl, "$.identifiers[0].value", "US0378331005"},
		{aapl, `$.identifiers[?(@.kind == "FIGI")].value`, "BBG000B9XRY4"},
		{treasury, "$.coupon.accrual.period", "6M"},
		{treasury, "$.settle_days", "1"},
		{sofrSwap, "$.pay_fixed", "true"},
	}
	for _, tc := range tests {
		got, err := LookupString(tc.s, tc.path)
		if err != nil {
			t.Errorf("LookupString(%s, %s) failed: %v", tc.s.Ticker(), tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("LookupString(%s, %s) = %q, want %q", tc.s.Ticker(), tc.path, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	v, err := Lookup(aapl, "$.identifiers[*].kind")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	kinds, ok := v.([]any)
	if !ok || len(kinds) != 2 {
		t.Fatalf("Lookup() = %#v, want two kinds", v)
	}

	if _, err := LookupString(spyCall, "$.underlying_security"); err == nil {
		t.Error("LookupString() of an object succeeded, want an error")
	}
	if _, err := Lookup(spyCall, "$.no_such_key"); err == nil {
		t.Error("Lookup() of a missing key succeeded, want an error")
	}
	if _, err := Lookup(spyCall, "$["); err == nil {
		t.Error("Lookup() of an invalid path succeeded, want an error")
	}
}
