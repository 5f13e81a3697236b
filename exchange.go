package finsec

import (
	"fmt"
	"regexp"
	"slices"
)

// micRegex checks for the format: 4 uppercase alphanumeric characters.
var micRegex = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// Exchange is a trading venue. Its value is a short stable token; MIC returns the ISO 10383
// market identifier code.
type Exchange string

const (
	ExchangeUnknown Exchange = "UNK"

	// USA
	NYSE   Exchange = "NYS"
	NASDAQ Exchange = "NSQ"
	ARCA   Exchange = "ARC"
	BATS   Exchange = "BAT"
	IEX    Exchange = "IEX"
	PHLX   Exchange = "PHX"
	AMEX   Exchange = "AMX"
	CME    Exchange = "CME"
	CBOE   Exchange = "CBO"

	// Canada
	TSX Exchange = "TSX"
)

var exchangeMICs = map[Exchange]string{
	NYSE:   "XNYS",
	NASDAQ: "XNAS",
	ARCA:   "ARCX",
	BATS:   "BATS",
	IEX:    "IEXG",
	PHLX:   "XPHL",
	AMEX:   "XASE",
	CME:    "XCME",
	CBOE:   "XCBO",
	TSX:    "XTSE",
}

var exchanges = []Exchange{ExchangeUnknown, NYSE, NASDAQ, ARCA, BATS, IEX, PHLX, AMEX, CME, CBOE, TSX}

func (e Exchange) Valid() bool { return slices.Contains(exchanges, e) }

// MIC returns the ISO 10383 market identifier code, or "" for ExchangeUnknown.
func (e Exchange) MIC() string { return exchangeMICs[e] }

// ParseExchange parses an exchange token.
func ParseExchange(s string) (Exchange, error) { return parseToken(exchanges, "exchange", s) }

// ExchangeByMIC returns the exchange registered with the given market identifier code.
func ExchangeByMIC(mic string) (Exchange, error) {
	if err := ValidateMIC(mic); err != nil {
		return ExchangeUnknown, err
	}
	for e, m := range exchangeMICs {
		if m == mic {
			return e, nil
		}
	}
	return ExchangeUnknown, fmt.Errorf("no exchange registered for MIC %q", mic)
}

func (e Exchange) MarshalText() ([]byte, error) { return marshalToken(e) }

func (e *Exchange) UnmarshalText(b []byte) error {
	return unmarshalToken(exchanges, "exchange", e, b)
}

// ValidateMIC checks if a string conforms to the MIC (ISO 10383) format.
// It returns nil if valid, or a descriptive error if invalid.
// Note: This validates the format only, not whether the MIC is officially registered.
func ValidateMIC(mic string) error {
	// 1. Length validation
	if len(mic) != 4 {
		return fmt.Errorf("invalid length: must be 4 characters, got %d", len(mic))
	}

	// 2. Format validation
	if !micRegex.MatchString(mic) {
		return fmt.Errorf("invalid format: must be 4 uppercase alphanumeric characters")
	}

	// If all checks pass, the MIC format is valid
	return nil
}
