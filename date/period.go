package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unit is the unit of a Tenor.
type Unit byte

const (
	Days   Unit = 'D'
	Weeks  Unit = 'W'
	Months Unit = 'M'
	Years  Unit = 'Y'
)

// Tenor is a length of time expressed in calendar units, like "3M" or "1Y".
type Tenor struct {
	n    int
	unit Unit
}

// NewTenor returns a tenor of n units.
func NewTenor(n int, unit Unit) Tenor { return Tenor{n: n, unit: unit} }

// Len returns the number of units.
func (t Tenor) Len() int { return t.n }

// Unit returns the tenor unit.
func (t Tenor) Unit() Unit { return t.unit }

// IsZero reports whether t is the zero Tenor.
func (t Tenor) IsZero() bool { return t == Tenor{} }

func (t Tenor) String() string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.n) + string(t.unit)
}

// AddTo returns d moved forward by the tenor. Month arithmetic overflows like time.AddDate.
func (t Tenor) AddTo(d Date) Date {
	switch t.unit {
	case Days:
		return d.Add(t.n)
	case Weeks:
		return d.Add(7 * t.n)
	case Months:
		return New(d.y, d.m+time.Month(t.n), d.d)
	case Years:
		return New(d.y+t.n, d.m, d.d)
	default:
		return d
	}
}

// ParseTenor parses strings like "3M", "1y", "2W" or "10D".
func ParseTenor(s string) (Tenor, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("invalid tenor %q: want <n><D|W|M|Y>", s)
	}
	unit := Unit(s[len(s)-1])
	switch unit {
	case Days, Weeks, Months, Years:
	default:
		return Tenor{}, fmt.Errorf("invalid tenor %q: unknown unit %q", s, string(unit))
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return Tenor{}, fmt.Errorf("invalid tenor %q: length must be a positive integer", s)
	}
	return Tenor{n: n, unit: unit}, nil
}

// FrequencyTenor converts a number of payments per year into the matching coupon period.
func FrequencyTenor(perYear int) (Tenor, error) {
	switch perYear {
	case 1:
		return Tenor{1, Years}, nil
	case 2:
		return Tenor{6, Months}, nil
	case 3:
		return Tenor{4, Months}, nil
	case 4:
		return Tenor{3, Months}, nil
	case 6:
		return Tenor{2, Months}, nil
	case 12:
		return Tenor{1, Months}, nil
	case 24:
		return Tenor{2, Weeks}, nil
	case 52:
		return Tenor{1, Weeks}, nil
	default:
		return Tenor{}, fmt.Errorf("cannot convert frequency %d per year to a period", perYear)
	}
}
