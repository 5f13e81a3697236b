package finsec

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/finsec/date"
)

func d(s string) date.Date { return date.MustParse(s) }

// recordingSchedule is a ScheduleGenerator that returns the accrual bounds and keeps the
// accrual it was given.
type recordingSchedule struct {
	got []AccrualInfo
}

func (r *recordingSchedule) Schedule(a AccrualInfo) ([]date.Date, error) {
	r.got = append(r.got, a)
	return []date.Date{a.Start, a.Maturity()}, nil
}

type failingSchedule struct{}

func (failingSchedule) Schedule(AccrualInfo) ([]date.Date, error) {
	return nil, errors.New("calendar unavailable")
}

func TestAccrualInfo_Normalized(t *testing.T) {
	tests := []struct {
		name string
		a    AccrualInfo
		want AccrualInfo
	}{
		{
			name: "frequency",
			a:    AccrualInfo{Start: d("2024-01-15"), End: d("2025-01-15"), DayCount: Actual360, Frequency: 4},
			want: AccrualInfo{Start: d("2024-01-15"), End: d("2025-01-15"), DayCount: Actual360, Frequency: 4, Period: date.NewTenor(3, date.Months), Calendar: NullCalendar, PaymentCalendar: NullCalendar, Convention: Following},
		},
		{
			name: "explicit period wins",
			a:    AccrualInfo{Start: d("2024-01-15"), Term: date.NewTenor(2, date.Years), DayCount: Thirty360, Frequency: 4, Period: date.NewTenor(1, date.Months), Calendar: USSOFR, Convention: ModifiedFollowing},
			want: AccrualInfo{Start: d("2024-01-15"), Term: date.NewTenor(2, date.Years), DayCount: Thirty360, Frequency: 4, Period: date.NewTenor(1, date.Months), Calendar: USSOFR, PaymentCalendar: NullCalendar, Convention: ModifiedFollowing},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.a.normalized("accrual")
			if err != nil {
				t.Fatalf("normalized() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("normalized() = %+v, want %+v", got, tc.want)
			}
		})
	}

	a := AccrualInfo{Start: d("2024-03-15"), Term: date.NewTenor(18, date.Months)}
	if got, want := a.Maturity(), d("2025-09-15"); got != want {
		t.Errorf("Maturity() = %s, want %s", got, want)
	}
}

func TestAccrualInfo_Errors(t *testing.T) {
	start := d("2024-01-15")
	tests := []struct {
		name  string
		a     AccrualInfo
		field string
	}{
		{"no start", AccrualInfo{End: d("2025-01-15"), DayCount: Actual360, Frequency: 2}, "accrual.start"},
		{"no end", AccrualInfo{Start: start, DayCount: Actual360, Frequency: 2}, "accrual.end"},
		{"end and term", AccrualInfo{Start: start, End: d("2025-01-15"), Term: date.NewTenor(1, date.Years), DayCount: Actual360, Frequency: 2}, "accrual.term"},
		{"end before start", AccrualInfo{Start: start, End: d("2023-01-15"), DayCount: Actual360, Frequency: 2}, "accrual.end"},
		{"day count", AccrualInfo{Start: start, End: d("2025-01-15"), DayCount: "BUS/252", Frequency: 2}, "accrual.day_count"},
		{"no period", AccrualInfo{Start: start, End: d("2025-01-15"), DayCount: Actual360}, "accrual.period"},
		{"frequency", AccrualInfo{Start: start, End: d("2025-01-15"), DayCount: Actual360, Frequency: 5}, "accrual.frequency"},
		{"calendar", AccrualInfo{Start: start, End: d("2025-01-15"), DayCount: Actual360, Frequency: 2, Calendar: "MARS"}, "accrual.calendar"},
		{"convention", AccrualInfo{Start: start, End: d("2025-01-15"), DayCount: Actual360, Frequency: 2, Convention: "XX"}, "accrual.convention"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.a.normalized("accrual")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("normalized() error = %v, want a *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestBond(t *testing.T) {
	if got, want := treasury.MaturityDate(), d("2034-05-15"); got != want {
		t.Errorf("MaturityDate() = %s, want %s", got, want)
	}
	if !treasury.Coupon().Notional.Equal(dec("1000")) {
		t.Errorf("coupon notional = %s, want the face value", treasury.Coupon().Notional)
	}
	terms := treasury.PricingTerms()
	if terms.Period != date.NewTenor(6, date.Months) || terms.Calendar != NullCalendar || terms.Convention != Following || terms.DayCount != ActualActual {
		t.Errorf("PricingTerms() = %+v", terms)
	}
	g := &recordingSchedule{}
	dates, err := treasury.CouponDates(g)
	if err != nil {
		t.Fatalf("CouponDates() failed: %v", err)
	}
	if len(g.got) != 1 || g.got[0] != treasury.Coupon().Accrual {
		t.Errorf("CouponDates() passed %+v, want the coupon accrual", g.got)
	}
	if len(dates) != 2 || dates[1] != d("2034-05-15") {
		t.Errorf("CouponDates() = %v", dates)
	}
	if _, err := treasury.CouponDates(failingSchedule{}); err == nil {
		t.Error("CouponDates() hides the generator error")
	}
}

func TestNewBond_Errors(t *testing.T) {
	coupon := FixedLeg{Rate: dec("0.05"), Accrual: AccrualInfo{Start: d("2024-01-15"), Term: date.NewTenor(5, date.Years), DayCount: Thirty360, Frequency: 1}}
	tests := []struct {
		name  string
		p     BondParams
		field string
	}{
		{"no issuer", BondParams{Ticker: "B", Currency: usd, FaceValue: dec("100"), Coupon: coupon}, "issuer"},
		{"no currency", BondParams{Ticker: "B", Issuer: "I", FaceValue: dec("100"), Coupon: coupon}, "currency"},
		{"no face value", BondParams{Ticker: "B", Issuer: "I", Currency: usd, Coupon: coupon}, "face_value"},
		{"negative settle days", BondParams{Ticker: "B", Issuer: "I", Currency: usd, FaceValue: dec("100"), Coupon: coupon, SettleDays: -1}, "settle_days"},
		{"negative rate", BondParams{Ticker: "B", Issuer: "I", Currency: usd, FaceValue: dec("100"), Coupon: FixedLeg{Rate: dec("-0.01"), Accrual: coupon.Accrual}}, "coupon.rate"},
		{"early maturity", BondParams{Ticker: "B", Issuer: "I", Currency: usd, FaceValue: dec("100"), Coupon: coupon, Maturity: date.New(2025, time.January, 15)}, "maturity_date"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBond(tc.p)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("NewBond() error = %v, want a *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestInterestRateSwap(t *testing.T) {
	if !sofrSwap.PayFixed() {
		t.Error("PayFixed() = false, want true")
	}
	if got := sofrSwap.FloatingLeg().Gearing; !got.Equal(dec("1")) {
		t.Errorf("default Gearing = %s, want 1", got)
	}
	g := &recordingSchedule{}
	if _, err := sofrSwap.FixedDates(g); err != nil {
		t.Fatalf("FixedDates() failed: %v", err)
	}
	if _, err := sofrSwap.FloatingDates(g); err != nil {
		t.Fatalf("FloatingDates() failed: %v", err)
	}
	if len(g.got) != 2 || g.got[0].Period != date.NewTenor(6, date.Months) || g.got[1].Period != date.NewTenor(3, date.Months) {
		t.Errorf("leg accruals = %+v, want the 6M fixed then the 3M floating accrual", g.got)
	}
	if terms := sofrSwap.FloatingLeg().PricingTerms(); terms.Maturity != d("2029-01-02") {
		t.Errorf("floating maturity = %s, want 2029-01-02", terms.Maturity)
	}

	p := InterestRateSwapParams{
		Ticker:      "BAD",
		Currency:    usd,
		FixedLeg:    sofrSwap.FixedLeg(),
		FloatingLeg: sofrSwap.FloatingLeg(),
	}
	p.FloatingLeg.Notional = dec("2000000")
	if _, err := NewInterestRateSwap(p); err == nil {
		t.Error("NewInterestRateSwap() with different notionals succeeded, want an error")
	}
	p.FloatingLeg = sofrSwap.FloatingLeg()
	p.FloatingLeg.Index = ""
	var verr *ValidationError
	if _, err := NewInterestRateSwap(p); !errors.As(err, &verr) || verr.Field != "floating_leg.index" {
		t.Errorf("NewInterestRateSwap() error = %v, want a missing floating_leg.index", err)
	}
}

func TestCalendar_Text(t *testing.T) {
	c, err := ParseCalendar("us/nyse")
	if err != nil || c != USNYSE {
		t.Errorf("ParseCalendar(us/nyse) = %v, %v", c, err)
	}
	if _, err := ParseDayCount("BUS/252"); err == nil {
		t.Error("ParseDayCount(BUS/252) succeeded, want an error")
	}
	if bdc, err := ParseBusinessDayConvention("mf"); err != nil || bdc != ModifiedFollowing {
		t.Errorf("ParseBusinessDayConvention(mf) = %v, %v", bdc, err)
	}
}
