package finsec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// occRegex matches an OSI option symbol: root, YYMMDD, C or P, strike in thousandths on 8 digits.
var occRegex = regexp.MustCompile(`^([A-Z0-9]{1,6})([0-9]{6})([CP])([0-9]{8})$`)

var occRootRegex = regexp.MustCompile(`^[A-Z0-9]{1,6}$`)

const occDateFormat = "060102"

// occStrikeScale is the number of strike units in one price unit.
var occStrikeScale = decimal.NewFromInt(1000)

// OCCSymbol is a decoded OCC (OSI) option symbol.
type OCCSymbol struct {
	Root   string
	Expiry date.Date
	Type   OptionType
	Strike decimal.Decimal
}

func (s OCCSymbol) String() string {
	v, err := FormatOCC(s.Root, s.Expiry, s.Type, s.Strike)
	if err != nil {
		return ""
	}
	return v
}

// FormatOCC returns the OCC symbol of an option, like "SPY121117C00140000". The strike is
// truncated to a thousandth.
func FormatOCC(root string, expiry date.Date, t OptionType, strike decimal.Decimal) (string, error) {
	root = normalizeTicker(root)
	if !occRootRegex.MatchString(root) {
		return "", fmt.Errorf("invalid OCC root %q: want 1 to 6 chars of A-Z or 0-9", root)
	}
	if expiry.IsZero() {
		return "", fmt.Errorf("missing OCC expiry date")
	}
	if y := expiry.Year(); y < 2000 || y > 2099 {
		return "", fmt.Errorf("OCC expiry year %d out of range", y)
	}
	var flavor string
	switch t {
	case Call:
		flavor = "C"
	case Put:
		flavor = "P"
	default:
		return "", fmt.Errorf("invalid option type %q", string(t))
	}
	k := strike.Mul(occStrikeScale).Floor()
	if !k.IsPositive() || k.GreaterThanOrEqual(decimal.NewFromInt(100_000_000)) {
		return "", fmt.Errorf("strike %s cannot be written on 8 digits", strike)
	}
	return fmt.Sprintf("%s%s%s%08d", root, expiry.Format(occDateFormat), flavor, k.IntPart()), nil
}

// ParseOCC decodes an OCC option symbol. Surrounding spaces and case are ignored.
func ParseOCC(symbol string) (OCCSymbol, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	m := occRegex.FindStringSubmatch(s)
	if m == nil {
		return OCCSymbol{}, fmt.Errorf("invalid OCC symbol %q: want ROOT+YYMMDD+C|P+8 digits strike", symbol)
	}
	on, err := time.Parse(occDateFormat, m[2])
	if err != nil {
		return OCCSymbol{}, fmt.Errorf("invalid OCC symbol %q: %w", symbol, err)
	}
	t := Call
	if m[3] == "P" {
		t = Put
	}
	k, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return OCCSymbol{}, fmt.Errorf("invalid OCC symbol %q: %w", symbol, err)
	}
	if k == 0 {
		return OCCSymbol{}, fmt.Errorf("invalid OCC symbol %q: zero strike", symbol)
	}
	return OCCSymbol{
		Root:   m[1],
		Expiry: date.FromTime(on),
		Type:   t,
		Strike: decimal.New(k, -3),
	}, nil
}
