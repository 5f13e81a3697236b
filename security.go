package finsec

import (
	"slices"
	"strings"
)

// Security is the contract shared by every security kind. The set of implementations is closed:
// FiatCurrency, CryptoCurrency, Stock, ETP, DerivedIndex, Future, Option, Bond and
// InterestRateSwap.
//
// Securities are immutable once built, so they can be shared freely between goroutines.
type Security interface {
	GSID() GSID                // GSID returns the identity of the security.
	Ticker() string            // Ticker returns the uppercase ticker.
	Type() SecurityType        // Type returns the discriminator of the concrete kind.
	Identifiers() []Identifier // Identifiers returns a copy of the external identifiers, in order.
	Description() string
	Website() string

	// Currency returns the currency the security is denominated in, or nil when unknown.
	Currency() *FiatCurrency

	// Underlier returns the security a derivative is written on, nil for other kinds.
	Underlier() Security

	// PhysicalDelivery reports whether the security can be delivered to settle a derivative
	// written on it.
	PhysicalDelivery() bool

	// Equal reports whether both securities have the same GSID, whatever their other fields.
	Equal(Security) bool

	// encode returns the structured form of the security.
	encode() map[string]any
}

// base holds the fields common to all kinds. It is embedded in every concrete type.
type base struct {
	gsid        GSID
	ticker      string
	kind        SecurityType
	identifiers []Identifier
	description string
	website     string
	currency    *FiatCurrency
}

// baseParams are the inputs every kind accepts.
type baseParams struct {
	gsid        GSID
	ticker      string
	description string
	website     string
	identifiers []Identifier
	currency    *FiatCurrency
}

// newBase normalizes and validates the common fields.
func newBase(kind SecurityType, p baseParams) (base, error) {
	if err := p.gsid.validate(); err != nil {
		return base{}, err
	}
	ticker := normalizeTicker(p.ticker)
	if ticker == "" {
		return base{}, missing("ticker")
	}
	for i, id := range p.identifiers {
		if id.IsZero() || !id.kind.Valid() {
			return base{}, invalid("identifiers", ErrInvalidIdentifier, "identifier #%d is not initialized", i)
		}
	}
	return base{
		gsid:        p.gsid,
		ticker:      ticker,
		kind:        kind,
		identifiers: slices.Clone(p.identifiers),
		description: strings.TrimSpace(p.description),
		website:     strings.TrimSpace(p.website),
		currency:    p.currency,
	}, nil
}

func (b base) GSID() GSID                { return b.gsid }
func (b base) Ticker() string            { return b.ticker }
func (b base) Type() SecurityType        { return b.kind }
func (b base) Identifiers() []Identifier { return slices.Clone(b.identifiers) }
func (b base) Description() string       { return b.description }
func (b base) Website() string           { return b.website }
func (b base) Currency() *FiatCurrency   { return b.currency }
func (b base) Underlier() Security       { return nil }

// Equal reports whether other has the same GSID.
func (b base) Equal(other Security) bool { return other != nil && b.gsid == other.GSID() }

// encode returns the fields common to all kinds.
func (b base) encode() map[string]any {
	m := map[string]any{
		keyType:        string(b.kind),
		keyGSID:        int64(b.gsid),
		keyTicker:      b.ticker,
		keyIdentifiers: encodeIdentifiers(b.identifiers),
	}
	optional(m, keyDescription, b.description)
	optional(m, keyWebsite, b.website)
	if b.currency != nil {
		m[keyCurrency] = b.currency.encode()
	}
	return m
}

// Identical reports whether a and b have exactly the same content, underliers included. Unlike
// Equal it does not stop at the GSID.
func Identical(a, b Security) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, err := EncodeText(a)
	if err != nil {
		return false
	}
	tb, err := EncodeText(b)
	if err != nil {
		return false
	}
	return string(ta) == string(tb)
}

func normalizeTicker(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
