package finsec

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("simple object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1)
		w.Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"b":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("raw value", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", json.RawMessage(`{"c": 3}`))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":{"c":3}}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", make(chan int))
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() should fail on a channel value")
		}
	})
}

func TestMarshalCanonical(t *testing.T) {
	m := map[string]any{
		"ticker":        "SPY",
		"gsid":          int64(7),
		keyType:         "ETP",
		"identifiers":   []any{map[string]any{"value": "X", "kind": "FIGI"}},
		"currency":      map[string]any{"ticker": "USD", keyType: "FIAT_CURRENCY"},
		"end_of_month":  false,
		"primary_exc":   "ARC",
		"a_first_field": "a",
	}
	got, err := marshalCanonical(m)
	if err != nil {
		t.Fatalf("marshalCanonical() unexpected error: %v", err)
	}
	want := `{"security_type":"ETP","a_first_field":"a","currency":{"security_type":"FIAT_CURRENCY","ticker":"USD"},"end_of_month":false,"gsid":7,"identifiers":[{"kind":"FIGI","value":"X"}],"primary_exc":"ARC","ticker":"SPY"}`
	if string(got) != want {
		t.Errorf("marshalCanonical()\n got: %s\nwant: %s", got, want)
	}
}
