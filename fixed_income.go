package finsec

import (
	"slices"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// DayCount is the convention turning a pair of dates into a year fraction.
type DayCount string

const (
	Actual360      DayCount = "ACT/360"
	Actual365Fixed DayCount = "ACT/365F"
	ActualActual   DayCount = "ACT/ACT"
	Thirty360      DayCount = "30/360"
)

var dayCounts = []DayCount{Actual360, Actual365Fixed, ActualActual, Thirty360}

// BusinessDayConvention tells how a date falling on a holiday is moved.
type BusinessDayConvention string

const (
	Unadjusted                 BusinessDayConvention = "U"
	Following                  BusinessDayConvention = "F"
	ModifiedFollowing          BusinessDayConvention = "MF"
	Preceding                  BusinessDayConvention = "P"
	ModifiedPreceding          BusinessDayConvention = "MP"
	HalfMonthModifiedFollowing BusinessDayConvention = "HMF"
	Nearest                    BusinessDayConvention = "N"
)

var businessDayConventions = []BusinessDayConvention{
	Unadjusted, Following, ModifiedFollowing, Preceding, ModifiedPreceding, HalfMonthModifiedFollowing, Nearest,
}

// Calendar names a holiday calendar. Calendars are implemented by the ScheduleGenerator.
type Calendar string

const (
	NullCalendar     Calendar = "NULL"
	USSettlement     Calendar = "US/SETTLEMENT"
	USNYSE           Calendar = "US/NYSE"
	USGovernmentBond Calendar = "US/GOVERNMENT_BOND"
	USFederalReserve Calendar = "US/FEDERAL_RESERVE"
	USNERC           Calendar = "US/NERC"
	USSOFR           Calendar = "US/SOFR"
)

var calendars = []Calendar{NullCalendar, USSettlement, USNYSE, USGovernmentBond, USFederalReserve, USNERC, USSOFR}

func (t DayCount) Valid() bool              { return slices.Contains(dayCounts, t) }
func (t BusinessDayConvention) Valid() bool { return slices.Contains(businessDayConventions, t) }
func (t Calendar) Valid() bool              { return slices.Contains(calendars, t) }

// ParseDayCount parses a day count token like "act/360".
func ParseDayCount(s string) (DayCount, error) { return parseToken(dayCounts, "day count", s) }

// ParseBusinessDayConvention parses a convention short code like "MF".
func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	return parseToken(businessDayConventions, "business day convention", s)
}

// ParseCalendar parses a calendar token like "us/nyse".
func ParseCalendar(s string) (Calendar, error) { return parseToken(calendars, "calendar", s) }

func (t DayCount) MarshalText() ([]byte, error)              { return marshalToken(t) }
func (t BusinessDayConvention) MarshalText() ([]byte, error) { return marshalToken(t) }
func (t Calendar) MarshalText() ([]byte, error)              { return marshalToken(t) }

func (t *DayCount) UnmarshalText(b []byte) error {
	return unmarshalToken(dayCounts, "day count", t, b)
}

func (t *BusinessDayConvention) UnmarshalText(b []byte) error {
	return unmarshalToken(businessDayConventions, "business day convention", t, b)
}

func (t *Calendar) UnmarshalText(b []byte) error {
	return unmarshalToken(calendars, "calendar", t, b)
}

// AccrualInfo describes how a coupon stream accrues. It is a pure description: turning it into
// dates is the job of a ScheduleGenerator.
//
// The end of the schedule is either End or Start moved by Term. The coupon period is either
// Period or derived from Frequency (payments per year).
type AccrualInfo struct {
	Start           date.Date
	End             date.Date
	Term            date.Tenor
	DayCount        DayCount
	Frequency       int
	Period          date.Tenor
	Calendar        Calendar // accrual calendar, NULL when empty
	PaymentCalendar Calendar // NULL when empty
	Convention      BusinessDayConvention

	// BackwardGeneration generates dates from the end, leaving the stub period at the front.
	BackwardGeneration bool
	EndOfMonth         bool
}

// normalized returns a copy of a with defaults applied, or an error naming the offending field.
func (a AccrualInfo) normalized(field string) (AccrualInfo, error) {
	if a.Start.IsZero() {
		return a, missing(field + ".start")
	}
	if a.End.IsZero() && a.Term.IsZero() {
		return a, missing(field + ".end")
	}
	if !a.End.IsZero() && !a.Term.IsZero() {
		return a, invalid(field+".term", nil, "end and term are mutually exclusive")
	}
	if !a.Maturity().After(a.Start) {
		return a, invalid(field+".end", nil, "end %s must be after start %s", a.Maturity(), a.Start)
	}
	if !a.DayCount.Valid() {
		return a, invalid(field+".day_count", nil, "unknown day count %q", string(a.DayCount))
	}
	if a.Period.IsZero() {
		if a.Frequency == 0 {
			return a, missing(field + ".period")
		}
		p, err := date.FrequencyTenor(a.Frequency)
		if err != nil {
			return a, invalid(field+".frequency", err, "%v", err)
		}
		a.Period = p
	}
	if a.Calendar == "" {
		a.Calendar = NullCalendar
	}
	if a.PaymentCalendar == "" {
		a.PaymentCalendar = NullCalendar
	}
	if a.Convention == "" {
		a.Convention = Following
	}
	if !a.Calendar.Valid() {
		return a, invalid(field+".calendar", nil, "unknown calendar %q", string(a.Calendar))
	}
	if !a.PaymentCalendar.Valid() {
		return a, invalid(field+".payment_calendar", nil, "unknown calendar %q", string(a.PaymentCalendar))
	}
	if !a.Convention.Valid() {
		return a, invalid(field+".convention", nil, "unknown business day convention %q", string(a.Convention))
	}
	return a, nil
}

// Maturity returns the unadjusted end of the schedule.
func (a AccrualInfo) Maturity() date.Date {
	if !a.End.IsZero() {
		return a.End
	}
	return a.Term.AddTo(a.Start)
}

func (a AccrualInfo) encode() map[string]any {
	m := map[string]any{
		"start":               a.Start.String(),
		"day_count":           string(a.DayCount),
		"period":              a.Period.String(),
		"calendar":            string(a.Calendar),
		"payment_calendar":    string(a.PaymentCalendar),
		"convention":          string(a.Convention),
		"backward_generation": a.BackwardGeneration,
		"end_of_month":        a.EndOfMonth,
	}
	if !a.End.IsZero() {
		m["end"] = a.End.String()
	} else {
		m["term"] = a.Term.String()
	}
	return m
}

// ScheduleGenerator turns an accrual description into the list of schedule dates, both ends
// included. Implementations own the holiday calendars and business day adjustments.
type ScheduleGenerator interface {
	Schedule(AccrualInfo) ([]date.Date, error)
}

// PricingTerms are the leg attributes a pricing library needs.
type PricingTerms struct {
	Notional   decimal.Decimal
	DayCount   DayCount
	Calendar   Calendar
	Period     date.Tenor
	Convention BusinessDayConvention
	Maturity   date.Date
}

// FixedLeg is a stream of fixed rate coupons.
type FixedLeg struct {
	Notional decimal.Decimal
	Rate     decimal.Decimal // annual rate, 0.05 for 5%
	Accrual  AccrualInfo
}

func (l FixedLeg) normalized(field string) (FixedLeg, error) {
	if err := positive(field+".notional", l.Notional); err != nil {
		return l, err
	}
	if l.Rate.IsNegative() {
		return l, invalid(field+".rate", nil, "must not be negative, got %s", l.Rate)
	}
	a, err := l.Accrual.normalized(field + ".accrual")
	if err != nil {
		return l, err
	}
	l.Accrual = a
	return l, nil
}

// PricingTerms returns the leg terms for pricing.
func (l FixedLeg) PricingTerms() PricingTerms { return legTerms(l.Notional, l.Accrual) }

func (l FixedLeg) encode() map[string]any {
	return map[string]any{
		"notional": l.Notional.String(),
		"rate":     l.Rate.String(),
		"accrual":  l.Accrual.encode(),
	}
}

// FloatingLeg is a stream of coupons indexed on a floating rate: Gearing * Index + Spread.
type FloatingLeg struct {
	Notional decimal.Decimal
	Index    string // rate index name, like "SOFR"
	Spread   decimal.Decimal
	Gearing  decimal.Decimal // 1 when zero
	Accrual  AccrualInfo
}

func (l FloatingLeg) normalized(field string) (FloatingLeg, error) {
	if err := positive(field+".notional", l.Notional); err != nil {
		return l, err
	}
	if l.Index == "" {
		return l, missing(field + ".index")
	}
	if l.Gearing.IsZero() {
		l.Gearing = decimal.NewFromInt(1)
	}
	a, err := l.Accrual.normalized(field + ".accrual")
	if err != nil {
		return l, err
	}
	l.Accrual = a
	return l, nil
}

// PricingTerms returns the leg terms for pricing.
func (l FloatingLeg) PricingTerms() PricingTerms { return legTerms(l.Notional, l.Accrual) }

func (l FloatingLeg) encode() map[string]any {
	return map[string]any{
		"notional": l.Notional.String(),
		"index":    l.Index,
		"spread":   l.Spread.String(),
		"gearing":  l.Gearing.String(),
		"accrual":  l.Accrual.encode(),
	}
}

func legTerms(notional decimal.Decimal, a AccrualInfo) PricingTerms {
	return PricingTerms{
		Notional:   notional,
		DayCount:   a.DayCount,
		Calendar:   a.Calendar,
		Period:     a.Period,
		Convention: a.Convention,
		Maturity:   a.Maturity(),
	}
}
