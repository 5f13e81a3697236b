package finsec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/finsec/date"
	"gopkg.in/yaml.v3"
)

// EncodeYAML returns the YAML form of s, with the same keys and key order as EncodeText.
func EncodeYAML(s Security) ([]byte, error) {
	m, err := EncodeStruct(s)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(yamlNode(m))
	if err != nil {
		return nil, &SerializationError{Path: "$", Msg: "cannot marshal", Err: err}
	}
	return data, nil
}

// DecodeYAML parses a single YAML document and decodes it with DecodeStruct.
func DecodeYAML(data []byte) (Security, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &SerializationError{Path: "$", Msg: "invalid YAML", Err: err}
	}
	if m == nil {
		return nil, &SerializationError{Path: "$", Msg: "empty document"}
	}
	return DecodeStruct(m)
}

// yamlNode converts a mapping form value into a node, keeping the canonical key order and
// tagging scalars so that strings like "2024-06-21" or "100" stay strings.
func yamlNode(v any) *yaml.Node {
	switch x := v.(type) {
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range canonicalKeys(x) {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, yamlNode(x[k]))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			n.Content = append(n.Content, yamlNode(e))
		}
		return n
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(x, 10)}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(x)}
	}
}

// normalizeValue converts values produced by YAML decoding into the mapping form types.
// Timestamps become dates, integers become int64 and maps with non string keys are keyed by
// their printed form.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = normalizeValue(e)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalizeValue(e)
		}
		return m
	case []any:
		l := make([]any, len(x))
		for i, e := range x {
			l[i] = normalizeValue(e)
		}
		return l
	case time.Time:
		return date.FromTime(x).String()
	case int:
		return int64(x)
	case uint64:
		if x <= 1<<63-1 {
			return int64(x)
		}
		return x
	default:
		return v
	}
}
