package finsec

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// figiRegex checks for 12 chars of consonants and digits, with a 'G' in third position.
var figiRegex = regexp.MustCompile(`^[B-DF-HJ-NP-TV-Z0-9]{2}G[B-DF-HJ-NP-TV-Z0-9]{8}[0-9]$`)

// cusipRegex checks for 8 alphanumeric (or *@#) chars and a check digit.
var cusipRegex = regexp.MustCompile(`^[0-9A-Z*@#]{8}[0-9]$`)

// symbolRegex checks exchange symbols like "BRK.B" or "ESU22".
var symbolRegex = regexp.MustCompile(`^[A-Z0-9./-]{1,21}$`)

// FIGI prefixes reserved to avoid confusion with ISIN country codes.
var figiReservedPrefixes = []string{"BS", "BM", "GG", "GB", "GH", "KY", "VG"}

// IdentifierKind names the scheme of an external security identifier.
type IdentifierKind string

const (
	KindISIN           IdentifierKind = "ISIN"
	KindFIGI           IdentifierKind = "FIGI"
	KindCUSIP          IdentifierKind = "CUSIP"
	KindOCC            IdentifierKind = "OCC"
	KindExchangeSymbol IdentifierKind = "EXCHANGE_SYMBOL"
)

var identifierKinds = []IdentifierKind{KindISIN, KindFIGI, KindCUSIP, KindOCC, KindExchangeSymbol}

func (k IdentifierKind) Valid() bool { return slices.Contains(identifierKinds, k) }

func (k IdentifierKind) MarshalText() ([]byte, error) { return marshalToken(k) }

func (k *IdentifierKind) UnmarshalText(b []byte) error {
	return unmarshalToken(identifierKinds, "identifier kind", k, b)
}

// Identifier is an external identifier of a security, validated for its kind. It is a comparable
// value type.
type Identifier struct {
	kind  IdentifierKind
	value string
}

// NewIdentifier validates value according to kind and returns the identifier in its canonical
// (trimmed, uppercase) form.
func NewIdentifier(kind IdentifierKind, value string) (Identifier, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	var err error
	switch kind {
	case KindISIN:
		err = ValidateISIN(value)
	case KindFIGI:
		err = ValidateFIGI(value)
	case KindCUSIP:
		err = ValidateCUSIP(value)
	case KindOCC:
		_, err = ParseOCC(value)
	case KindExchangeSymbol:
		if !symbolRegex.MatchString(value) {
			err = fmt.Errorf("invalid format: must be 1 to 21 chars of A-Z, 0-9, '.', '/' or '-', got %q", value)
		}
	default:
		return Identifier{}, invalid("identifiers", ErrInvalidIdentifier, "unknown identifier kind %q", string(kind))
	}
	if err != nil {
		return Identifier{}, &ValidationError{
			Field: "identifiers",
			Msg:   fmt.Sprintf("%s %q", kind, value),
			Err:   fmt.Errorf("%w: %w", ErrInvalidIdentifier, err),
		}
	}
	return Identifier{kind: kind, value: value}, nil
}

// NewISIN returns an ISIN (ISO 6166) identifier.
func NewISIN(value string) (Identifier, error) { return NewIdentifier(KindISIN, value) }

// NewFIGI returns a FIGI (Financial Instrument Global Identifier).
func NewFIGI(value string) (Identifier, error) { return NewIdentifier(KindFIGI, value) }

// NewCUSIP returns a CUSIP identifier.
func NewCUSIP(value string) (Identifier, error) { return NewIdentifier(KindCUSIP, value) }

// NewOCC returns an OCC option symbol identifier.
func NewOCC(value string) (Identifier, error) { return NewIdentifier(KindOCC, value) }

// NewExchangeSymbol returns an exchange ticker-like identifier.
func NewExchangeSymbol(value string) (Identifier, error) {
	return NewIdentifier(KindExchangeSymbol, value)
}

// Kind returns the identifier scheme.
func (id Identifier) Kind() IdentifierKind { return id.kind }

// Value returns the canonical literal.
func (id Identifier) Value() string { return id.value }

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool { return id == Identifier{} }

func (id Identifier) String() string { return string(id.kind) + ":" + id.value }

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	// 1. Length validation
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}

	// 2. Format validation
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// 3. Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		numericStr.WriteString(strconv.Itoa(charValue(char)))
	}

	// 4. Apply a variation of the Luhn algorithm, from the right.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	// 5. Validate the check digit
	return checkDigit(sum, isin[11])
}

// ValidateFIGI checks the FIGI format and its check digit.
func ValidateFIGI(figi string) error {
	if len(figi) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(figi))
	}
	if !figiRegex.MatchString(figi) {
		return fmt.Errorf("invalid format: must be 12 uppercase consonants or digits with 'G' in third position")
	}
	for _, p := range figiReservedPrefixes {
		if strings.HasPrefix(figi, p) {
			return fmt.Errorf("invalid format: prefix %q is reserved", p)
		}
	}
	return checkDigit(alternateSum(figi[:11]), figi[11])
}

// ValidateCUSIP checks the CUSIP format and its check digit.
func ValidateCUSIP(cusip string) error {
	if len(cusip) != 9 {
		return fmt.Errorf("invalid length: must be 9 characters, got %d", len(cusip))
	}
	if !cusipRegex.MatchString(cusip) {
		return fmt.Errorf("invalid format: must be 8 alphanumeric characters and 1 digit")
	}
	return checkDigit(alternateSum(cusip[:8]), cusip[8])
}

// charValue maps '0'-'9' to 0-9, 'A'-'Z' to 10-35 and '*', '@', '#' to 36-38.
func charValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	case c == '*':
		return 36
	case c == '@':
		return 37
	case c == '#':
		return 38
	}
	return 0
}

// alternateSum doubles the value of every second char from the left and sums the digits.
// FIGI and CUSIP share this scheme.
func alternateSum(s string) int {
	sum := 0
	for i, c := range s {
		v := charValue(c)
		if i%2 == 1 {
			v *= 2
		}
		sum += v/10 + v%10
	}
	return sum
}

func checkDigit(sum int, actual byte) error {
	expected := (10 - (sum % 10)) % 10
	if got := int(actual - '0'); got != expected {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expected, got)
	}
	return nil
}
