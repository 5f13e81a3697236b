package finsec

import "strings"

// Stock is a common stock listed on a primary exchange.
type Stock struct {
	base
	exchange Exchange
}

// StockParams are the inputs of NewStock.
type StockParams struct {
	GSID            GSID          `json:"gsid"`
	Ticker          string        `json:"ticker" validate:"required"`
	PrimaryExchange Exchange      `json:"primary_exc" validate:"required,exchange"`
	Description     string        `json:"description" validate:"required"`
	Website         string        `json:"website"`
	Currency        *FiatCurrency `json:"currency"`
	Identifiers     []Identifier  `json:"identifiers"`
}

// NewStock returns a validated Stock.
func NewStock(p StockParams) (*Stock, error) {
	p.Description = strings.TrimSpace(p.Description)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	b, err := newBase(TypeStock, baseParams{
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
	return &Stock{base: b, exchange: p.PrimaryExchange}, nil
}

// PrimaryExchange returns the primary listing venue.
func (s *Stock) PrimaryExchange() Exchange { return s.exchange }

// PhysicalDelivery is true: shares can be delivered.
func (s *Stock) PhysicalDelivery() bool { return true }

func (s *Stock) encode() map[string]any {
	m := s.base.encode()
	m[keyExchange] = string(s.exchange)
	return m
}

// ETP is an exchange traded product (ETF, ETN, ...) issued by a fund sponsor.
type ETP struct {
	base
	exchange Exchange
	issuer   string
}

// ETPParams are the inputs of NewETP.
type ETPParams struct {
	GSID            GSID          `json:"gsid"`
	Ticker          string        `json:"ticker" validate:"required"`
	PrimaryExchange Exchange      `json:"primary_exc" validate:"required,exchange"`
	Issuer          string        `json:"issuer" validate:"required"`
	Description     string        `json:"description" validate:"required"`
	Website         string        `json:"website"`
	Currency        *FiatCurrency `json:"currency"`
	Identifiers     []Identifier  `json:"identifiers"`
}

// NewETP returns a validated ETP.
func NewETP(p ETPParams) (*ETP, error) {
	p.Issuer = strings.TrimSpace(p.Issuer)
	p.Description = strings.TrimSpace(p.Description)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	b, err := newBase(TypeETP, baseParams{
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
	return &ETP{base: b, exchange: p.PrimaryExchange, issuer: p.Issuer}, nil
}

// PrimaryExchange returns the primary listing venue.
func (e *ETP) PrimaryExchange() Exchange { return e.exchange }

// Issuer returns the fund sponsor.
func (e *ETP) Issuer() string { return e.issuer }

// PhysicalDelivery is true: units can be delivered.
func (e *ETP) PhysicalDelivery() bool { return true }

func (e *ETP) encode() map[string]any {
	m := e.base.encode()
	m[keyExchange] = string(e.exchange)
	m[keyIssuer] = e.issuer
	return m
}
