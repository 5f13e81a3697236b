package finsec

import (
	"strings"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// Bond is a fixed coupon bond. A zero coupon bond has a coupon leg with a zero rate.
type Bond struct {
	base
	issuer     string
	faceValue  decimal.Decimal
	coupon     FixedLeg
	maturity   date.Date
	settleDays int
}

// BondParams are the inputs of NewBond. Coupon.Notional defaults to FaceValue and Maturity to
// the end of the coupon schedule.
type BondParams struct {
	GSID        GSID            `json:"gsid"`
	Ticker      string          `json:"ticker" validate:"required"`
	Issuer      string          `json:"issuer" validate:"required"`
	Currency    *FiatCurrency   `json:"currency" validate:"required"`
	FaceValue   decimal.Decimal `json:"face_value"`
	Coupon      FixedLeg        `json:"coupon"`
	Maturity    date.Date       `json:"maturity_date"`
	SettleDays  int             `json:"settle_days" validate:"gte=0"`
	Description string          `json:"description"`
	Website     string          `json:"website"`
	Identifiers []Identifier    `json:"identifiers"`
}

// NewBond returns a validated Bond.
func NewBond(p BondParams) (*Bond, error) {
	p.Issuer = strings.TrimSpace(p.Issuer)
	if err := checkParams(p); err != nil {
		return nil, err
	}
	if err := positive(keyFaceValue, p.FaceValue); err != nil {
		return nil, err
	}
	if p.Coupon.Notional.IsZero() {
		p.Coupon.Notional = p.FaceValue
	}
	coupon, err := p.Coupon.normalized(keyCoupon)
	if err != nil {
		return nil, err
	}
	maturity := p.Maturity
	if maturity.IsZero() {
		maturity = coupon.Accrual.Maturity()
	}
	if maturity.Before(coupon.Accrual.Maturity()) {
		return nil, invalid(keyMaturity, nil, "maturity %s is before the end of the coupon schedule %s", maturity, coupon.Accrual.Maturity())
	}
	b, err := newBase(TypeBond, baseParams{
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
	return &Bond{
		base:       b,
		issuer:     p.Issuer,
		faceValue:  p.FaceValue,
		coupon:     coupon,
		maturity:   maturity,
		settleDays: p.SettleDays,
	}, nil
}

func (b *Bond) Issuer() string             { return b.issuer }
func (b *Bond) FaceValue() decimal.Decimal { return b.faceValue }
func (b *Bond) Coupon() FixedLeg           { return b.coupon }
func (b *Bond) MaturityDate() date.Date    { return b.maturity }
func (b *Bond) SettleDays() int            { return b.settleDays }

// PhysicalDelivery is true: bond futures deliver bonds.
func (b *Bond) PhysicalDelivery() bool { return true }

// CouponDates returns the coupon schedule computed by g.
func (b *Bond) CouponDates(g ScheduleGenerator) ([]date.Date, error) {
	return g.Schedule(b.coupon.Accrual)
}

// PricingTerms returns the coupon leg terms.
func (b *Bond) PricingTerms() PricingTerms {
	t := b.coupon.PricingTerms()
	t.Maturity = b.maturity
	return t
}

func (b *Bond) encode() map[string]any {
	m := b.base.encode()
	m[keyIssuer] = b.issuer
	m[keyFaceValue] = b.faceValue.String()
	m[keyCoupon] = b.coupon.encode()
	m[keyMaturity] = b.maturity.String()
	m[keySettleDays] = int64(b.settleDays)
	return m
}

// InterestRateSwap exchanges a fixed leg against a floating leg on the same notional.
type InterestRateSwap struct {
	base
	fixed    FixedLeg
	floating FloatingLeg
	payFixed bool
}

// InterestRateSwapParams are the inputs of NewInterestRateSwap.
type InterestRateSwapParams struct {
	GSID        GSID          `json:"gsid"`
	Ticker      string        `json:"ticker" validate:"required"`
	Currency    *FiatCurrency `json:"currency" validate:"required"`
	FixedLeg    FixedLeg      `json:"fixed_leg"`
	FloatingLeg FloatingLeg   `json:"floating_leg"`
	PayFixed    bool          `json:"pay_fixed"` // PayFixed is true for a payer swap.
	Description string        `json:"description"`
	Identifiers []Identifier  `json:"identifiers"`
}

// NewInterestRateSwap returns a validated InterestRateSwap.
func NewInterestRateSwap(p InterestRateSwapParams) (*InterestRateSwap, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	fixed, err := p.FixedLeg.normalized(keyFixedLeg)
	if err != nil {
		return nil, err
	}
	floating, err := p.FloatingLeg.normalized(keyFloatingLeg)
	if err != nil {
		return nil, err
	}
	if !fixed.Notional.Equal(floating.Notional) {
		return nil, invalid(keyFloatingLeg+".notional", nil, "notional %s differs from the fixed leg notional %s", floating.Notional, fixed.Notional)
	}
	b, err := newBase(TypeInterestRateSwap, baseParams{
		gsid:        p.GSID,
		ticker:      p.Ticker,
		description: p.Description,
		identifiers: p.Identifiers,
		currency:    p.Currency,
	})
	if err != nil {
		return nil, err
	}
	return &InterestRateSwap{base: b, fixed: fixed, floating: floating, payFixed: p.PayFixed}, nil
}

func (s *InterestRateSwap) FixedLeg() FixedLeg       { return s.fixed }
func (s *InterestRateSwap) FloatingLeg() FloatingLeg { return s.floating }
func (s *InterestRateSwap) PayFixed() bool           { return s.payFixed }

// PhysicalDelivery is false.
func (s *InterestRateSwap) PhysicalDelivery() bool { return false }

// FixedDates returns the fixed leg schedule computed by g.
func (s *InterestRateSwap) FixedDates(g ScheduleGenerator) ([]date.Date, error) {
	return g.Schedule(s.fixed.Accrual)
}

// FloatingDates returns the floating leg schedule computed by g.
func (s *InterestRateSwap) FloatingDates(g ScheduleGenerator) ([]date.Date, error) {
	return g.Schedule(s.floating.Accrual)
}

func (s *InterestRateSwap) encode() map[string]any {
	m := s.base.encode()
	m[keyFixedLeg] = s.fixed.encode()
	m[keyFloatingLeg] = s.floating.encode()
	m[keyPayFixed] = s.payFixed
	return m
}
