package finsec

import "strings"

// DerivedIndex is an index computed from other securities, like the S&P 500. It cannot be
// delivered, so derivatives on it settle in cash.
type DerivedIndex struct {
	base
	issuer string
}

// DerivedIndexParams are the inputs of NewDerivedIndex.
type DerivedIndexParams struct {
	GSID        GSID          `json:"gsid"`
	Ticker      string        `json:"ticker" validate:"required"`
	Issuer      string        `json:"issuer" validate:"required"`
	Currency    *FiatCurrency `json:"currency" validate:"required"`
	Description string        `json:"description"`
	Website     string        `json:"website"`
	Identifiers []Identifier  `json:"identifiers"`
}

// NewDerivedIndex returns a validated DerivedIndex.
func NewDerivedIndex(p DerivedIndexParams) (*DerivedIndex, error) {
	p.Issuer = strings.TrimSpace(p.Issuer)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	b, err := newBase(TypeDerivedIndex, baseParams{
		gsid:        p.GSID,
		ticker:      p.Ticker,
		description: p.Description,
		website:     p.Website,
		identifiers: p.Identifiers,
		currency:    p.Currency,
	})
	if err != nil {
		return nil, err
	}
	return &DerivedIndex{base: b, issuer: p.Issuer}, nil
}

// Issuer returns the index publisher.
func (x *DerivedIndex) Issuer() string { return x.issuer }

// PhysicalDelivery is false.
func (x *DerivedIndex) PhysicalDelivery() bool { return false }

func (x *DerivedIndex) encode() map[string]any {
	m := x.base.encode()
	m[keyIssuer] = x.issuer
	return m
}
