package finsec

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// FiatCurrency is a national currency. Its ticker is the ISO 4217 code.
type FiatCurrency struct {
	base
	nation string
}

// FiatCurrencyParams are the inputs of NewFiatCurrency.
type FiatCurrencyParams struct {
	GSID        GSID         `json:"gsid"`
	Ticker      string       `json:"ticker" validate:"required,iso4217"`
	Nation      string       `json:"nation" validate:"required"`
	Description string       `json:"description"`
	Identifiers []Identifier `json:"identifiers"`
}

// NewFiatCurrency returns a validated FiatCurrency.
func NewFiatCurrency(p FiatCurrencyParams) (*FiatCurrency, error) {
	p.Ticker = normalizeTicker(p.Ticker)
	p.Nation = strings.TrimSpace(p.Nation)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	b, err := newBase(TypeFiatCurrency, baseParams{
		gsid:        p.GSID,
		ticker:      p.Ticker,
		description: p.Description,
		identifiers: p.Identifiers,
	})
	if err != nil {
		return nil, err
	}
	return &FiatCurrency{base: b, nation: p.Nation}, nil
}

// Nation returns the issuing nation.
func (c *FiatCurrency) Nation() string { return c.nation }

// MinorUnits returns the number of decimal digits of the currency (2 for USD, 0 for JPY).
func (c *FiatCurrency) MinorUnits() int {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, c.ticker).Currency().Fraction
}

// PhysicalDelivery is true: FX contracts can deliver the currency.
func (c *FiatCurrency) PhysicalDelivery() bool { return true }

func (c *FiatCurrency) encode() map[string]any {
	m := c.base.encode()
	m[keyNation] = c.nation
	return m
}

// CryptoCurrency is a digital currency such as BTC.
type CryptoCurrency struct {
	base
}

// CryptoCurrencyParams are the inputs of NewCryptoCurrency.
type CryptoCurrencyParams struct {
	GSID        GSID         `json:"gsid"`
	Ticker      string       `json:"ticker" validate:"required"`
	Description string       `json:"description"`
	Identifiers []Identifier `json:"identifiers"`
}

// NewCryptoCurrency returns a validated CryptoCurrency.
func NewCryptoCurrency(p CryptoCurrencyParams) (*CryptoCurrency, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	b, err := newBase(TypeCryptoCurrency, baseParams{
		gsid:        p.GSID,
		ticker:      p.Ticker,
		description: p.Description,
		identifiers: p.Identifiers,
	})
	if err != nil {
		return nil, err
	}
	return &CryptoCurrency{base: b}, nil
}

// PhysicalDelivery is true.
func (c *CryptoCurrency) PhysicalDelivery() bool { return true }
