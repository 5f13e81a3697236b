package finsec

import (
	"strings"
	"time"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// MaxUnderlierDepth bounds the length of an underlier chain (option on a future on an index is 2).
const MaxUnderlierDepth = 32

// derivative holds the fields shared by futures and options.
type derivative struct {
	base
	underlier  Security
	exchange   Exchange
	expiry     date.Date
	settlement SettlementType
	series     ExpirySeriesType
	timeOfDay  ExpiryTimeOfDay
	multiplier decimal.Decimal
}

// derivativeParams are the derivative inputs common to futures and options, after
// normalization.
type derivativeParams struct {
	baseParams
	underlier  Security
	exchange   Exchange
	expiry     any
	settlement SettlementType
	series     ExpirySeriesType
	timeOfDay  ExpiryTimeOfDay
	multiplier decimal.Decimal
}

// newDerivative resolves defaults in this order: explicit value, value inferred from the
// underlier, fixed default.
func newDerivative(kind SecurityType, p derivativeParams) (derivative, error) {
	expiry, err := parseExpiry(p.expiry)
	if err != nil {
		return derivative{}, err
	}
	if err := positive(keyMultiplier, p.multiplier); err != nil {
		return derivative{}, err
	}
	settlement, err := resolveSettlement(p.settlement, p.underlier)
	if err != nil {
		return derivative{}, err
	}
	series := p.series
	if series == "" {
		series = SeriesUnknown
	} else if !series.Valid() {
		return derivative{}, invalid(keySeries, nil, "unknown expiry series type %q", string(series))
	}
	timeOfDay := p.timeOfDay
	if timeOfDay == "" {
		timeOfDay = ExpiryUnknown
	} else if !timeOfDay.Valid() {
		return derivative{}, invalid(keyTimeOfDay, nil, "unknown expiry time of day %q", string(timeOfDay))
	}
	if p.currency == nil {
		p.currency = p.underlier.Currency()
	}
	if p.currency == nil {
		return derivative{}, invalid(keyCurrency, ErrMissingField, "is required when the underlier %s has no currency", p.underlier.Ticker())
	}
	b, err := newBase(kind, p.baseParams)
	if err != nil {
		return derivative{}, err
	}
	if err := checkUnderlierChain(b.gsid, p.underlier); err != nil {
		return derivative{}, err
	}
	return derivative{
		base:       b,
		underlier:  p.underlier,
		exchange:   p.exchange,
		expiry:     expiry,
		settlement: settlement,
		series:     series,
		timeOfDay:  timeOfDay,
		multiplier: p.multiplier,
	}, nil
}

// Underlier returns the security the contract is written on.
func (d derivative) Underlier() Security { return d.underlier }

// PrimaryExchange returns the listing venue.
func (d derivative) PrimaryExchange() Exchange { return d.exchange }

// ExpiryDate returns the last trading day.
func (d derivative) ExpiryDate() date.Date { return d.expiry }

// SettlementType is never SettlementUnknown.
func (d derivative) SettlementType() SettlementType { return d.settlement }

// ExpirySeriesType defaults to SeriesUnknown.
func (d derivative) ExpirySeriesType() ExpirySeriesType { return d.series }

// ExpiryTimeOfDay defaults to ExpiryUnknown.
func (d derivative) ExpiryTimeOfDay() ExpiryTimeOfDay { return d.timeOfDay }

// Multiplier returns the contract size relative to the underlier.
func (d derivative) Multiplier() decimal.Decimal { return d.multiplier }

// PhysicalDelivery is true: a derivative position can itself be delivered, like the future
// an option on futures exercises into.
func (d derivative) PhysicalDelivery() bool { return true }

func (d derivative) encode() map[string]any {
	m := d.base.encode()
	m[keyUnderlier] = d.underlier.encode()
	m[keyExchange] = string(d.exchange)
	m[keyExpiry] = d.expiry.String()
	m[keySettlement] = string(d.settlement)
	m[keySeries] = string(d.series)
	m[keyTimeOfDay] = string(d.timeOfDay)
	m[keyMultiplier] = d.multiplier.String()
	return m
}

// resolveSettlement keeps an explicit settlement type unless it asks for physical delivery of
// an underlier that cannot be delivered. Otherwise it infers it from the underlier.
func resolveSettlement(requested SettlementType, underlier Security) (SettlementType, error) {
	deliverable := underlier.PhysicalDelivery()
	switch requested {
	case "", SettlementUnknown:
		if deliverable {
			return SettlementPhysical, nil
		}
		return SettlementCash, nil
	case SettlementPhysical:
		if !deliverable {
			return "", invalid(keySettlement, ErrSettlementConflict, "%s %s cannot be physically delivered", underlier.Type(), underlier.Ticker())
		}
		return requested, nil
	case SettlementCash:
		return requested, nil
	default:
		return "", invalid(keySettlement, nil, "unknown settlement type %q", string(requested))
	}
}

// checkUnderlierChain walks the underlier chain from u and fails if a GSID shows up twice,
// the new security's own GSID included, or if the chain is deeper than MaxUnderlierDepth.
func checkUnderlierChain(self GSID, u Security) error {
	seen := map[GSID]bool{self: true}
	for depth := 1; u != nil; depth++ {
		if depth > MaxUnderlierDepth {
			return invalid(keyUnderlier, ErrCyclicUnderlier, "underlier chain is deeper than %d", MaxUnderlierDepth)
		}
		if seen[u.GSID()] {
			return invalid(keyUnderlier, ErrCyclicUnderlier, "gsid %v (%s) is reached twice following underliers", u.GSID(), u.Ticker())
		}
		seen[u.GSID()] = true
		u = u.Underlier()
	}
	return nil
}

// parseExpiry accepts a date.Date, a time.Time or an ISO-8601 "YYYY-MM-DD" string.
func parseExpiry(v any) (date.Date, error) {
	var d date.Date
	switch x := v.(type) {
	case nil:
		return d, missing(keyExpiry)
	case date.Date:
		d = x
	case *date.Date:
		if x == nil {
			return d, missing(keyExpiry)
		}
		d = *x
	case time.Time:
		if x.IsZero() {
			return d, missing(keyExpiry)
		}
		d = date.FromTime(x)
	case string:
		if strings.TrimSpace(x) == "" {
			return d, missing(keyExpiry)
		}
		parsed, err := date.Parse(x)
		if err != nil {
			return d, invalid(keyExpiry, err, "%v", err)
		}
		d = parsed
	default:
		return d, invalid(keyExpiry, nil, "unsupported type %T, want date.Date, time.Time or an ISO-8601 string", v)
	}
	if d.IsZero() {
		return d, missing(keyExpiry)
	}
	return d, nil
}

// positive returns a ValidationError unless v is strictly positive.
func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalid(field, nil, "must be positive, got %s", v)
	}
	return nil
}
