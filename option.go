package finsec

import (
	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// Option is an option contract. Its exercise style is fixed by the constructor and reflected in
// its security type (AMERICAN_OPTION or EUROPEAN_OPTION).
type Option struct {
	derivative
	style      ExerciseStyle
	optionType OptionType
	strike     decimal.Decimal
}

// OptionParams are the inputs of NewAmericanOption and NewEuropeanOption.
//
// When Ticker is empty it is derived as the OCC symbol of the option. Optional fields default
// like in FutureParams.
type OptionParams struct {
	GSID             GSID             `json:"gsid"`
	Ticker           string           `json:"ticker"`
	Underlying       Security         `json:"underlying_security" validate:"required"`
	CallPut          string           `json:"callput" validate:"required"` // "call", "put", "c" or "p"
	Strike           decimal.Decimal  `json:"strike"`
	ExpiryDate       any              `json:"expiry_date" validate:"required"` // date.Date, time.Time or "YYYY-MM-DD"
	PrimaryExchange  Exchange         `json:"primary_exc" validate:"required,exchange"`
	Multiplier       decimal.Decimal  `json:"multiplier"`
	SettlementType   SettlementType   `json:"settlement_type"`
	ExpirySeriesType ExpirySeriesType `json:"expiry_series_type"`
	ExpiryTimeOfDay  ExpiryTimeOfDay  `json:"expiry_time_of_day"`
	Currency         *FiatCurrency    `json:"currency"`
	Description      string           `json:"description"`
	Website          string           `json:"website"`
	Identifiers      []Identifier     `json:"identifiers"`
}

// NewAmericanOption returns a validated option exercisable any day until expiry.
func NewAmericanOption(p OptionParams) (*Option, error) { return NewOption(American, p) }

// NewEuropeanOption returns a validated option exercisable at expiry only.
func NewEuropeanOption(p OptionParams) (*Option, error) { return NewOption(European, p) }

// NewOption returns a validated option of the given exercise style.
func NewOption(style ExerciseStyle, p OptionParams) (*Option, error) {
	var kind SecurityType
	switch style {
	case American:
		kind = TypeAmericanOption
	case European:
		kind = TypeEuropeanOption
	default:
		return nil, invalid("exercise_style", nil, "unknown exercise style %q", string(style))
	}
	if err := checkParams(p); err != nil {
		return nil, err
	}
	optionType, err := ParseOptionType(p.CallPut)
	if err != nil {
		return nil, invalid(keyCallPut, nil, "%v", err)
	}
	if err := positive(keyStrike, p.Strike); err != nil {
		return nil, err
	}
	expiry, err := parseExpiry(p.ExpiryDate)
	if err != nil {
		return nil, err
	}
	ticker := p.Ticker
	if normalizeTicker(ticker) == "" {
		ticker, err = FormatOCC(p.Underlying.Ticker(), expiry, optionType, p.Strike)
		if err != nil {
			return nil, invalid(keyTicker, err, "cannot derive the OCC symbol: %v", err)
		}
	}
	d, err := newDerivative(kind, derivativeParams{
		baseParams: baseParams{
			gsid:        p.GSID,
			ticker:      ticker,
			description: p.Description,
			website:     p.Website,
			identifiers: p.Identifiers,
			currency:    p.Currency,
		},
		underlier:  p.Underlying,
		exchange:   p.PrimaryExchange,
		expiry:     expiry,
		settlement: p.SettlementType,
		series:     p.ExpirySeriesType,
		timeOfDay:  p.ExpiryTimeOfDay,
		multiplier: p.Multiplier,
	})
	if err != nil {
		return nil, err
	}
	return &Option{derivative: d, style: style, optionType: optionType, strike: p.Strike}, nil
}

// ExerciseStyle returns American or European.
func (o *Option) ExerciseStyle() ExerciseStyle { return o.style }

// OptionType returns Call or Put.
func (o *Option) OptionType() OptionType { return o.optionType }

// Strike returns the strike price.
func (o *Option) Strike() decimal.Decimal { return o.strike }

// OCC returns the OCC symbol of the option.
func (o *Option) OCC() string {
	s, err := FormatOCC(o.underlier.Ticker(), o.expiry, o.optionType, o.strike)
	if err != nil {
		return ""
	}
	return s
}

// Expired reports whether the option is expired on day.
func (o *Option) Expired(day date.Date) bool { return day.After(o.expiry) }

func (o *Option) encode() map[string]any {
	m := o.derivative.encode()
	m[keyCallPut] = string(o.optionType)
	m[keyStrike] = o.strike.String()
	return m
}
