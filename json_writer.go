package finsec

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// jsonObjectWriter builds a JSON object whose members keep their insertion order. The zero
// value is an empty object. The first marshaling error sticks.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append marshals value and adds it under key.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)
	if w.Len() > 0 {
		w.WriteByte(',')
	}
	w.Write(k)
	w.WriteByte(':')
	w.Write(v)
	return w
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.Len()+2)
	out = append(out, '{')
	out = append(out, w.Bytes()...)
	return append(out, '}'), nil
}

// marshalCanonical writes a mapping form value as compact JSON. Object keys are sorted, except
// the security type that always comes first.
func marshalCanonical(v any) ([]byte, error) {
	switch x := v.(type) {
	case map[string]any:
		var w jsonObjectWriter
		for _, k := range canonicalKeys(x) {
			raw, err := marshalCanonical(x[k])
			if err != nil {
				return nil, err
			}
			w.Append(k, json.RawMessage(raw))
		}
		return w.MarshalJSON()
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := marshalCanonical(e)
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(x)
	}
}

// canonicalKeys returns the keys of m, security type first then in lexical order.
func canonicalKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == keyType:
			return -1
		case b == keyType:
			return 1
		}
		return cmp.Compare(a, b)
	})
	return keys
}
