package finsec

import (
	"fmt"
	"slices"
	"strings"
)

// Enumerations are string typed: the value of each member is its stable serialized token, so
// adding members never changes existing tokens.

// SecurityType is the discriminator of the concrete security kind.
type SecurityType string

const (
	TypeFiatCurrency     SecurityType = "FIAT_CURRENCY"
	TypeCryptoCurrency   SecurityType = "CRYPTO_CURRENCY"
	TypeStock            SecurityType = "STOCK"
	TypeETP              SecurityType = "ETP"
	TypeDerivedIndex     SecurityType = "DERIVED_INDEX"
	TypeFuture           SecurityType = "FUTURE"
	TypeAmericanOption   SecurityType = "AMERICAN_OPTION"
	TypeEuropeanOption   SecurityType = "EUROPEAN_OPTION"
	TypeBond             SecurityType = "BOND"
	TypeInterestRateSwap SecurityType = "INTEREST_RATE_SWAP"
)

var securityTypes = []SecurityType{
	TypeFiatCurrency, TypeCryptoCurrency, TypeStock, TypeETP, TypeDerivedIndex,
	TypeFuture, TypeAmericanOption, TypeEuropeanOption, TypeBond, TypeInterestRateSwap,
}

// SettlementType tells whether a derivative settles by delivering its underlier or in cash.
type SettlementType string

const (
	SettlementUnknown  SettlementType = "UNKNOWN"
	SettlementCash     SettlementType = "CASH"
	SettlementPhysical SettlementType = "PHYSICAL"
)

var settlementTypes = []SettlementType{SettlementUnknown, SettlementCash, SettlementPhysical}

// ExpirySeriesType classifies the expiry cycle of a derivative.
type ExpirySeriesType string

const (
	SeriesUnknown   ExpirySeriesType = "UNKNOWN"
	SeriesQuarterly ExpirySeriesType = "QUARTERLY"
	SeriesMonthly   ExpirySeriesType = "MONTHLY"
	SeriesWeekly    ExpirySeriesType = "WEEKLY"
)

var expirySeriesTypes = []ExpirySeriesType{SeriesUnknown, SeriesQuarterly, SeriesMonthly, SeriesWeekly}

// ExpiryTimeOfDay is the moment of the expiry day at which the final settlement price is set.
type ExpiryTimeOfDay string

const (
	ExpiryUnknown ExpiryTimeOfDay = "UNKNOWN"
	ExpiryOpen    ExpiryTimeOfDay = "OPEN"
	ExpiryEDSP    ExpiryTimeOfDay = "EDSP" // Exchange Delivery Settlement Price
	ExpiryClose   ExpiryTimeOfDay = "CLOSE"
)

var expiryTimesOfDay = []ExpiryTimeOfDay{ExpiryUnknown, ExpiryOpen, ExpiryEDSP, ExpiryClose}

// OptionType is the right conveyed by an option.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

var optionTypes = []OptionType{Call, Put}

// ExerciseStyle is when an option can be exercised.
type ExerciseStyle string

const (
	American ExerciseStyle = "AMERICAN"
	European ExerciseStyle = "EUROPEAN"
)

var exerciseStyles = []ExerciseStyle{American, European}

func (t SecurityType) Valid() bool     { return slices.Contains(securityTypes, t) }
func (t SettlementType) Valid() bool   { return slices.Contains(settlementTypes, t) }
func (t ExpirySeriesType) Valid() bool { return slices.Contains(expirySeriesTypes, t) }
func (t ExpiryTimeOfDay) Valid() bool  { return slices.Contains(expiryTimesOfDay, t) }
func (t OptionType) Valid() bool       { return slices.Contains(optionTypes, t) }
func (t ExerciseStyle) Valid() bool    { return slices.Contains(exerciseStyles, t) }

// ParseSecurityType parses a security type token.
func ParseSecurityType(s string) (SecurityType, error) {
	return parseToken(securityTypes, "security type", s)
}

// ParseSettlementType parses a settlement type token.
func ParseSettlementType(s string) (SettlementType, error) {
	return parseToken(settlementTypes, "settlement type", s)
}

// ParseExpirySeriesType parses an expiry series token.
func ParseExpirySeriesType(s string) (ExpirySeriesType, error) {
	return parseToken(expirySeriesTypes, "expiry series type", s)
}

// ParseExpiryTimeOfDay parses an expiry time of day token.
func ParseExpiryTimeOfDay(s string) (ExpiryTimeOfDay, error) {
	return parseToken(expiryTimesOfDay, "expiry time of day", s)
}

// ParseOptionType parses "call" or "put", in any case, and the one letter forms "c" and "p".
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CALL":
		return Call, nil
	case "P", "PUT":
		return Put, nil
	}
	return "", fmt.Errorf("unknown option type %q: want call or put", s)
}

// ParseExerciseStyle parses an exercise style token.
func ParseExerciseStyle(s string) (ExerciseStyle, error) {
	return parseToken(exerciseStyles, "exercise style", s)
}

func (t SecurityType) MarshalText() ([]byte, error)     { return marshalToken(t) }
func (t SettlementType) MarshalText() ([]byte, error)   { return marshalToken(t) }
func (t ExpirySeriesType) MarshalText() ([]byte, error) { return marshalToken(t) }
func (t ExpiryTimeOfDay) MarshalText() ([]byte, error)  { return marshalToken(t) }
func (t OptionType) MarshalText() ([]byte, error)       { return marshalToken(t) }
func (t ExerciseStyle) MarshalText() ([]byte, error)    { return marshalToken(t) }

func (t *SecurityType) UnmarshalText(b []byte) error {
	return unmarshalToken(securityTypes, "security type", t, b)
}

func (t *SettlementType) UnmarshalText(b []byte) error {
	return unmarshalToken(settlementTypes, "settlement type", t, b)
}

func (t *ExpirySeriesType) UnmarshalText(b []byte) error {
	return unmarshalToken(expirySeriesTypes, "expiry series type", t, b)
}

func (t *ExpiryTimeOfDay) UnmarshalText(b []byte) error {
	return unmarshalToken(expiryTimesOfDay, "expiry time of day", t, b)
}

func (t *OptionType) UnmarshalText(b []byte) error {
	v, err := ParseOptionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *ExerciseStyle) UnmarshalText(b []byte) error {
	return unmarshalToken(exerciseStyles, "exercise style", t, b)
}

// parseToken returns the member of set matching s, ignoring case and surrounding spaces.
func parseToken[T ~string](set []T, what, s string) (T, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range set {
		if string(t) == want {
			return t, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", what, s)
}

func marshalToken[T interface {
	~string
	Valid() bool
}](t T) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal unknown token %q", string(t))
	}
	return []byte(t), nil
}

func unmarshalToken[T ~string](set []T, what string, dst *T, b []byte) error {
	v, err := parseToken(set, what, string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
