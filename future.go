package finsec

import "github.com/shopspring/decimal"

// Future is a futures contract on an underlying security.
type Future struct {
	derivative
	tickSize decimal.Decimal
}

// FutureParams are the inputs of NewFuture.
//
// SettlementType, ExpirySeriesType, ExpiryTimeOfDay and Currency are optional. When absent the
// settlement type is CASH if the underlier cannot be physically delivered and PHYSICAL
// otherwise, the expiry series and time of day are UNKNOWN, and the currency is the
// underlier's.
type FutureParams struct {
	GSID             GSID             `json:"gsid"`
	Ticker           string           `json:"ticker" validate:"required"`
	Underlying       Security         `json:"underlying_security" validate:"required"`
	ExpiryDate       any              `json:"expiry_date" validate:"required"` // date.Date, time.Time or "YYYY-MM-DD"
	PrimaryExchange  Exchange         `json:"primary_exc" validate:"required,exchange"`
	TickSize         decimal.Decimal  `json:"tick_size"`
	Multiplier       decimal.Decimal  `json:"multiplier"`
	SettlementType   SettlementType   `json:"settlement_type"`
	ExpirySeriesType ExpirySeriesType `json:"expiry_series_type"`
	ExpiryTimeOfDay  ExpiryTimeOfDay  `json:"expiry_time_of_day"`
	Currency         *FiatCurrency    `json:"currency"`
	Description      string           `json:"description"`
	Website          string           `json:"website"`
	Identifiers      []Identifier     `json:"identifiers"`
}

// NewFuture returns a validated Future.
func NewFuture(p FutureParams) (*Future, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	if err := positive(keyTickSize, p.TickSize); err != nil {
		return nil, err
	}
	d, err := newDerivative(TypeFuture, derivativeParams{
		baseParams: baseParams{
			gsid:        p.GSID,
			ticker:      p.Ticker,
			description: p.Description,
			website:     p.Website,
			identifiers: p.Identifiers,
			currency:    p.Currency,
		},
		underlier:  p.Underlying,
		exchange:   p.PrimaryExchange,
		expiry:     p.ExpiryDate,
		settlement: p.SettlementType,
		series:     p.ExpirySeriesType,
		timeOfDay:  p.ExpiryTimeOfDay,
		multiplier: p.Multiplier,
	})
	if err != nil {
		return nil, err
	}
	return &Future{derivative: d, tickSize: p.TickSize}, nil
}

// TickSize returns the minimum price increment.
func (f *Future) TickSize() decimal.Decimal { return f.tickSize }

func (f *Future) encode() map[string]any {
	m := f.derivative.encode()
	m[keyTickSize] = f.tickSize.String()
	return m
}
