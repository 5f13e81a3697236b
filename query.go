package finsec

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Lookup evaluates a JSONPath expression like "$.underlying_security.ticker" over the mapping
// form of s. Wildcards and filters return a []any.
func Lookup(s Security, path string) (any, error) {
	m, err := EncodeStruct(s)
	if err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, m)
	if err != nil {
		return nil, fmt.Errorf("lookup %q in %s: %w", path, s.Ticker(), err)
	}
	return v, nil
}

// LookupString is like Lookup but wants a single scalar value, returned as a string.
func LookupString(s Security, path string) (string, error) {
	v, err := Lookup(s, path)
	if err != nil {
		return "", err
	}
	// jsonpath returns either a single value or a list: keep the only element of a list
	if list, ok := v.([]any); ok && len(list) == 1 {
		v = list[0]
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case int64, bool:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("lookup %q in %s: not a scalar value: %v", path, s.Ticker(), v)
	}
}
