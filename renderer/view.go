package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/finsec"
)

// View is the data the security templates are executed on.
type View struct {
	Ticker      string
	Type        string
	GSID        string
	Description string
	Website     string
	Attributes  []Attribute
	Identifiers []Identifier
	Underliers  []Underlier
}

// Attribute is a row of the attribute table. Nested fields are dotted, like "coupon.rate".
type Attribute struct {
	Name  string
	Value string
}

type Identifier struct {
	Kind  string
	Value string
}

// Underlier is an element of the underlier chain, nearest first.
type Underlier struct {
	Ticker string
	Type   string
	GSID   string
}

// headerKeys are rendered outside of the attribute table.
var headerKeys = []string{"security_type", "gsid", "ticker", "description", "website", "identifiers", "underlying_security"}

// NewView flattens s into a View.
func NewView(s finsec.Security) (*View, error) {
	m, err := finsec.EncodeStruct(s)
	if err != nil {
		return nil, err
	}
	v := &View{
		Ticker:      s.Ticker(),
		Type:        string(s.Type()),
		GSID:        s.GSID().String(),
		Description: s.Description(),
		Website:     s.Website(),
	}
	for _, id := range s.Identifiers() {
		v.Identifiers = append(v.Identifiers, Identifier{Kind: string(id.Kind()), Value: id.Value()})
	}
	for u := s.Underlier(); u != nil; u = u.Underlier() {
		v.Underliers = append(v.Underliers, Underlier{Ticker: u.Ticker(), Type: string(u.Type()), GSID: u.GSID().String()})
	}
	for k, val := range m {
		if slices.Contains(headerKeys, k) {
			continue
		}
		if k == "currency" {
			// the currency is a security of its own, show its ticker only
			v.Attributes = append(v.Attributes, Attribute{Name: k, Value: s.Currency().Ticker()})
			continue
		}
		v.Attributes = flatten(v.Attributes, k, val)
	}
	slices.SortFunc(v.Attributes, func(a, b Attribute) int { return strings.Compare(a.Name, b.Name) })
	return v, nil
}

func flatten(attrs []Attribute, name string, val any) []Attribute {
	switch x := val.(type) {
	case map[string]any:
		for k, e := range x {
			attrs = flatten(attrs, name+"."+k, e)
		}
		return attrs
	case []any:
		for i, e := range x {
			attrs = flatten(attrs, fmt.Sprintf("%s[%d]", name, i), e)
		}
		return attrs
	default:
		return append(attrs, Attribute{Name: name, Value: fmt.Sprint(x)})
	}
}
