package finsec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Keys of the mapping form.
const (
	keyType        = "security_type"
	keyGSID        = "gsid"
	keyTicker      = "ticker"
	keyIdentifiers = "identifiers"
	keyDescription = "description"
	keyWebsite     = "website"
	keyCurrency    = "currency"
	keyNation      = "nation"
	keyExchange    = "primary_exc"
	keyIssuer      = "issuer"
	keyUnderlier   = "underlying_security"
	keyExpiry      = "expiry_date"
	keySettlement  = "settlement_type"
	keySeries      = "expiry_series_type"
	keyTimeOfDay   = "expiry_time_of_day"
	keyMultiplier  = "multiplier"
	keyTickSize    = "tick_size"
	keyCallPut     = "callput"
	keyStrike      = "strike"
	keyFaceValue   = "face_value"
	keyCoupon      = "coupon"
	keyMaturity    = "maturity_date"
	keySettleDays  = "settle_days"
	keyFixedLeg    = "fixed_leg"
	keyFloatingLeg = "floating_leg"
	keyPayFixed    = "pay_fixed"
)

// EncodeStruct returns the mapping form of s: nested maps and slices holding only strings,
// int64 and bools. Decimals are canonical decimal strings, dates are "YYYY-MM-DD" and
// underliers are inlined.
func EncodeStruct(s Security) (map[string]any, error) {
	if s == nil {
		return nil, &SerializationError{Path: "$", Msg: "cannot encode a nil security"}
	}
	return s.encode(), nil
}

// DecodeStruct builds a security from its mapping form. The constructor of the variant named by
// "security_type" runs on the decoded fields, so the result satisfies every construction rule.
//
// Errors are *SerializationError. When a constructor rejects the fields, the *ValidationError
// is wrapped and can be retrieved with errors.As.
func DecodeStruct(m map[string]any) (Security, error) {
	return decodeMap("$", m, 0)
}

// EncodeText returns the canonical JSON form of s: no insignificant whitespace, "security_type"
// first and the other keys sorted.
func EncodeText(s Security) ([]byte, error) {
	m, err := EncodeStruct(s)
	if err != nil {
		return nil, err
	}
	data, err := marshalCanonical(m)
	if err != nil {
		return nil, &SerializationError{Path: "$", Msg: "cannot marshal", Err: err}
	}
	return data, nil
}

// DecodeText parses a single JSON object and decodes it with DecodeStruct.
func DecodeText(data []byte) (Security, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &SerializationError{Path: "$", Msg: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &SerializationError{Path: "$", Msg: "unexpected data after the JSON object"}
	}
	if m == nil {
		return nil, &SerializationError{Path: "$", Msg: "null is not a security"}
	}
	return DecodeStruct(m)
}

func optional(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func encodeIdentifiers(ids []Identifier) []any {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, map[string]any{"kind": string(id.kind), "value": id.value})
	}
	return list
}

// Keys each kind writes. Decoding rejects any other key, including the keys of another kind.
var (
	identityKeys = []string{keyType, keyGSID, keyTicker, keyIdentifiers, keyDescription}
	listedKeys   = slices.Concat(identityKeys, []string{keyWebsite, keyCurrency})
	derivedKeys  = slices.Concat(listedKeys, []string{keyUnderlier, keyExchange, keyExpiry, keySettlement, keySeries, keyTimeOfDay, keyMultiplier})

	kindKeys = map[SecurityType][]string{
		TypeFiatCurrency:     slices.Concat(identityKeys, []string{keyNation}),
		TypeCryptoCurrency:   identityKeys,
		TypeStock:            slices.Concat(listedKeys, []string{keyExchange}),
		TypeETP:              slices.Concat(listedKeys, []string{keyExchange, keyIssuer}),
		TypeDerivedIndex:     slices.Concat(listedKeys, []string{keyIssuer}),
		TypeFuture:           slices.Concat(derivedKeys, []string{keyTickSize}),
		TypeAmericanOption:   slices.Concat(derivedKeys, []string{keyCallPut, keyStrike}),
		TypeEuropeanOption:   slices.Concat(derivedKeys, []string{keyCallPut, keyStrike}),
		TypeBond:             slices.Concat(listedKeys, []string{keyIssuer, keyFaceValue, keyCoupon, keyMaturity, keySettleDays}),
		TypeInterestRateSwap: slices.Concat(identityKeys, []string{keyCurrency, keyFixedLeg, keyFloatingLeg, keyPayFixed}),
	}

	fixedLegKeys    = []string{"notional", "rate", "accrual"}
	floatingLegKeys = []string{"notional", "index", "spread", "gearing", "accrual"}
)

// checkKeys reports the first key of m, in lexical order, that is not in allowed.
func checkKeys(path string, m map[string]any, allowed []string, owner string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return &SerializationError{Path: path + "." + k, Msg: "unknown field for " + owner, Err: ErrUnknownField}
		}
	}
	return nil
}

// checkFields rejects the keys that kind does not write, in m and in its legs.
func checkFields(path string, kind SecurityType, m map[string]any) error {
	owner := "a " + string(kind)
	if err := checkKeys(path, m, kindKeys[kind], owner); err != nil {
		return err
	}
	type legKeys struct {
		key     string
		allowed []string
	}
	var legs []legKeys
	switch kind {
	case TypeBond:
		legs = []legKeys{{keyCoupon, fixedLegKeys}}
	case TypeInterestRateSwap:
		legs = []legKeys{{keyFixedLeg, fixedLegKeys}, {keyFloatingLeg, floatingLegKeys}}
	}
	for _, l := range legs {
		// non object legs are reported by the wire decoding
		if leg, ok := m[l.key].(map[string]any); ok {
			if err := checkKeys(path+"."+l.key, leg, l.allowed, l.key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Wire structs. checkFields has already narrowed the keys to the decoded kind. They are decoded
// with unknown fields disallowed, then handed to the constructors.

type baseWire struct {
	Type        string           `json:"security_type"`
	GSID        *int64           `json:"gsid"`
	Ticker      string           `json:"ticker"`
	Identifiers []identifierWire `json:"identifiers"`
	Description string           `json:"description"`
	Website     string           `json:"website"`
	Currency    json.RawMessage  `json:"currency"`
}

type identifierWire struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type fiatWire struct {
	baseWire
	Nation string `json:"nation"`
}

type stockWire struct {
	baseWire
	PrimaryExchange Exchange `json:"primary_exc"`
	Issuer          string   `json:"issuer"`
}

type indexWire struct {
	baseWire
	Issuer string `json:"issuer"`
}

type derivativeWire struct {
	baseWire
	Underlying       json.RawMessage  `json:"underlying_security"`
	PrimaryExchange  Exchange         `json:"primary_exc"`
	ExpiryDate       string           `json:"expiry_date"`
	SettlementType   SettlementType   `json:"settlement_type"`
	ExpirySeriesType ExpirySeriesType `json:"expiry_series_type"`
	ExpiryTimeOfDay  ExpiryTimeOfDay  `json:"expiry_time_of_day"`
	Multiplier       decimal.Decimal  `json:"multiplier"`
	TickSize         decimal.Decimal  `json:"tick_size"`
	CallPut          string           `json:"callput"`
	Strike           decimal.Decimal  `json:"strike"`
}

type accrualWire struct {
	Start              string                `json:"start"`
	End                string                `json:"end"`
	Term               string                `json:"term"`
	DayCount           DayCount              `json:"day_count"`
	Frequency          int                   `json:"frequency"`
	Period             string                `json:"period"`
	Calendar           Calendar              `json:"calendar"`
	PaymentCalendar    Calendar              `json:"payment_calendar"`
	Convention         BusinessDayConvention `json:"convention"`
	BackwardGeneration bool                  `json:"backward_generation"`
	EndOfMonth         bool                  `json:"end_of_month"`
}

type legWire struct {
	Notional decimal.Decimal `json:"notional"`
	Rate     decimal.Decimal `json:"rate"`
	Index    string          `json:"index"`
	Spread   decimal.Decimal `json:"spread"`
	Gearing  decimal.Decimal `json:"gearing"`
	Accrual  accrualWire     `json:"accrual"`
}

type bondWire struct {
	baseWire
	Issuer     string          `json:"issuer"`
	FaceValue  decimal.Decimal `json:"face_value"`
	Coupon     legWire         `json:"coupon"`
	Maturity   string          `json:"maturity_date"`
	SettleDays int             `json:"settle_days"`
}

type swapWire struct {
	baseWire
	FixedLeg    legWire `json:"fixed_leg"`
	FloatingLeg legWire `json:"floating_leg"`
	PayFixed    bool    `json:"pay_fixed"`
}

// decodeMap decodes the security at path. depth counts the underliers and currencies already
// entered.
func decodeMap(path string, m map[string]any, depth int) (Security, error) {
	if depth > MaxUnderlierDepth {
		return nil, &SerializationError{Path: path, Msg: fmt.Sprintf("nested deeper than %d", MaxUnderlierDepth), Err: ErrCyclicUnderlier}
	}
	raw, ok := m[keyType]
	if !ok {
		return nil, &SerializationError{Path: path + "." + keyType, Msg: "missing", Err: ErrUnknownSecurityType}
	}
	token, ok := raw.(string)
	if !ok {
		return nil, &SerializationError{Path: path + "." + keyType, Msg: fmt.Sprintf("want a string, got %T", raw), Err: ErrUnknownSecurityType}
	}
	kind, err := ParseSecurityType(token)
	if err != nil {
		return nil, &SerializationError{Path: path + "." + keyType, Msg: err.Error(), Err: ErrUnknownSecurityType}
	}
	logrus.WithFields(logrus.Fields{"path": path, "type": kind}).Debug("decode security")

	nm := normalizeValue(m).(map[string]any)
	if err := checkFields(path, kind, nm); err != nil {
		return nil, err
	}
	data, err := json.Marshal(nm)
	if err != nil {
		return nil, &SerializationError{Path: path, Msg: "unsupported value", Err: err}
	}
	d := &decoder{path: path, depth: depth}
	var s Security
	switch kind {
	case TypeFiatCurrency:
		s, err = d.fiatCurrency(data)
	case TypeCryptoCurrency:
		s, err = d.cryptoCurrency(data)
	case TypeStock:
		s, err = d.stock(data)
	case TypeETP:
		s, err = d.etp(data)
	case TypeDerivedIndex:
		s, err = d.derivedIndex(data)
	case TypeFuture:
		s, err = d.future(data)
	case TypeAmericanOption:
		s, err = d.option(American, data)
	case TypeEuropeanOption:
		s, err = d.option(European, data)
	case TypeBond:
		s, err = d.bond(data)
	case TypeInterestRateSwap:
		s, err = d.swap(data)
	}
	if err != nil {
		return nil, d.wrap(err)
	}
	return s, nil
}

// decoder decodes one level of the mapping form.
type decoder struct {
	path  string
	depth int
}

// wrap turns err into a *SerializationError located at the current path, unless it already is
// one.
func (d *decoder) wrap(err error) error {
	var serr *SerializationError
	if errors.As(err, &serr) {
		return err
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		path := d.path
		if verr.Field != "" {
			path += "." + verr.Field
		}
		return &SerializationError{Path: path, Msg: "invalid security", Err: err}
	}
	return &SerializationError{Path: d.path, Msg: "malformed security", Err: err}
}

// unmarshal decodes data into v, rejecting unknown fields.
func (d *decoder) unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &SerializationError{Path: d.path, Msg: "malformed security", Err: err}
	}
	return nil
}

// common decodes the fields shared by all kinds.
func (d *decoder) common(w baseWire) (GSID, []Identifier, *FiatCurrency, error) {
	if w.GSID == nil {
		return 0, nil, nil, &SerializationError{Path: d.path + "." + keyGSID, Msg: "missing", Err: missing(keyGSID)}
	}
	ids := make([]Identifier, 0, len(w.Identifiers))
	for i, iw := range w.Identifiers {
		id, err := NewIdentifier(IdentifierKind(strings.ToUpper(strings.TrimSpace(iw.Kind))), iw.Value)
		if err != nil {
			return 0, nil, nil, &SerializationError{Path: fmt.Sprintf("%s.%s[%d]", d.path, keyIdentifiers, i), Msg: "invalid identifier", Err: err}
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		ids = nil
	}
	cur, err := d.currency(w.Currency)
	if err != nil {
		return 0, nil, nil, err
	}
	return GSID(*w.GSID), ids, cur, nil
}

// nested decodes the security held in raw, or returns nil if raw is absent.
func (d *decoder) nested(key string, raw json.RawMessage) (Security, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	path := d.path + "." + key
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &SerializationError{Path: path, Msg: "want an object", Err: err}
	}
	return decodeMap(path, m, d.depth+1)
}

func (d *decoder) currency(raw json.RawMessage) (*FiatCurrency, error) {
	s, err := d.nested(keyCurrency, raw)
	if err != nil || s == nil {
		return nil, err
	}
	cur, ok := s.(*FiatCurrency)
	if !ok {
		return nil, &SerializationError{Path: d.path + "." + keyCurrency, Msg: fmt.Sprintf("want a %s, got %s", TypeFiatCurrency, s.Type())}
	}
	return cur, nil
}

func (d *decoder) fiatCurrency(data []byte) (Security, error) {
	var w fiatWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, _, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	return NewFiatCurrency(FiatCurrencyParams{
		GSID:        gsid,
		Ticker:      w.Ticker,
		Nation:      w.Nation,
		Description: w.Description,
		Identifiers: ids,
	})
}

func (d *decoder) cryptoCurrency(data []byte) (Security, error) {
	var w baseWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, _, err := d.common(w)
	if err != nil {
		return nil, err
	}
	return NewCryptoCurrency(CryptoCurrencyParams{
		GSID:        gsid,
		Ticker:      w.Ticker,
		Description: w.Description,
		Identifiers: ids,
	})
}

func (d *decoder) stock(data []byte) (Security, error) {
	var w stockWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	return NewStock(StockParams{
		GSID:            gsid,
		Ticker:          w.Ticker,
		PrimaryExchange: w.PrimaryExchange,
		Description:     w.Description,
		Website:         w.Website,
		Currency:        cur,
		Identifiers:     ids,
	})
}

func (d *decoder) etp(data []byte) (Security, error) {
	var w stockWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	return NewETP(ETPParams{
		GSID:            gsid,
		Ticker:          w.Ticker,
		PrimaryExchange: w.PrimaryExchange,
		Issuer:          w.Issuer,
		Description:     w.Description,
		Website:         w.Website,
		Currency:        cur,
		Identifiers:     ids,
	})
}

func (d *decoder) derivedIndex(data []byte) (Security, error) {
	var w indexWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	return NewDerivedIndex(DerivedIndexParams{
		GSID:        gsid,
		Ticker:      w.Ticker,
		Issuer:      w.Issuer,
		Currency:    cur,
		Description: w.Description,
		Website:     w.Website,
		Identifiers: ids,
	})
}

// derivative decodes the common part of futures and options.
func (d *decoder) derivative(data []byte) (derivativeWire, GSID, []Identifier, *FiatCurrency, Security, error) {
	var w derivativeWire
	if err := d.unmarshal(data, &w); err != nil {
		return w, 0, nil, nil, nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return w, 0, nil, nil, nil, err
	}
	u, err := d.nested(keyUnderlier, w.Underlying)
	if err != nil {
		return w, 0, nil, nil, nil, err
	}
	return w, gsid, ids, cur, u, nil
}

func (d *decoder) future(data []byte) (Security, error) {
	w, gsid, ids, cur, u, err := d.derivative(data)
	if err != nil {
		return nil, err
	}
	return NewFuture(FutureParams{
		GSID:             gsid,
		Ticker:           w.Ticker,
		Underlying:       u,
		ExpiryDate:       w.ExpiryDate,
		PrimaryExchange:  w.PrimaryExchange,
		TickSize:         w.TickSize,
		Multiplier:       w.Multiplier,
		SettlementType:   w.SettlementType,
		ExpirySeriesType: w.ExpirySeriesType,
		ExpiryTimeOfDay:  w.ExpiryTimeOfDay,
		Currency:         cur,
		Description:      w.Description,
		Website:          w.Website,
		Identifiers:      ids,
	})
}

func (d *decoder) option(style ExerciseStyle, data []byte) (Security, error) {
	w, gsid, ids, cur, u, err := d.derivative(data)
	if err != nil {
		return nil, err
	}
	return NewOption(style, OptionParams{
		GSID:             gsid,
		Ticker:           w.Ticker,
		Underlying:       u,
		ExpiryDate:       w.ExpiryDate,
		CallPut:          w.CallPut,
		Strike:           w.Strike,
		PrimaryExchange:  w.PrimaryExchange,
		Multiplier:       w.Multiplier,
		SettlementType:   w.SettlementType,
		ExpirySeriesType: w.ExpirySeriesType,
		ExpiryTimeOfDay:  w.ExpiryTimeOfDay,
		Currency:         cur,
		Description:      w.Description,
		Website:          w.Website,
		Identifiers:      ids,
	})
}

func (d *decoder) bond(data []byte) (Security, error) {
	var w bondWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	coupon, err := d.leg(keyCoupon, w.Coupon)
	if err != nil {
		return nil, err
	}
	var maturity date.Date
	if w.Maturity != "" {
		if maturity, err = date.Parse(w.Maturity); err != nil {
			return nil, &SerializationError{Path: d.path + "." + keyMaturity, Msg: "invalid date", Err: err}
		}
	}
	return NewBond(BondParams{
		GSID:        gsid,
		Ticker:      w.Ticker,
		Issuer:      w.Issuer,
		Currency:    cur,
		FaceValue:   w.FaceValue,
		Coupon:      FixedLeg{Notional: coupon.Notional, Rate: w.Coupon.Rate, Accrual: coupon.Accrual},
		Maturity:    maturity,
		SettleDays:  w.SettleDays,
		Description: w.Description,
		Website:     w.Website,
		Identifiers: ids,
	})
}

func (d *decoder) swap(data []byte) (Security, error) {
	var w swapWire
	if err := d.unmarshal(data, &w); err != nil {
		return nil, err
	}
	gsid, ids, cur, err := d.common(w.baseWire)
	if err != nil {
		return nil, err
	}
	fixed, err := d.leg(keyFixedLeg, w.FixedLeg)
	if err != nil {
		return nil, err
	}
	floating, err := d.leg(keyFloatingLeg, w.FloatingLeg)
	if err != nil {
		return nil, err
	}
	return NewInterestRateSwap(InterestRateSwapParams{
		GSID:        gsid,
		Ticker:      w.Ticker,
		Currency:    cur,
		FixedLeg:    FixedLeg{Notional: fixed.Notional, Rate: w.FixedLeg.Rate, Accrual: fixed.Accrual},
		FloatingLeg: floating,
		PayFixed:    w.PayFixed,
		Description: w.Description,
		Identifiers: ids,
	})
}

// leg decodes the fields shared by fixed and floating legs, as a FloatingLeg.
func (d *decoder) leg(key string, w legWire) (FloatingLeg, error) {
	path := d.path + "." + key + ".accrual"
	a := AccrualInfo{
		DayCount:           w.Accrual.DayCount,
		Frequency:          w.Accrual.Frequency,
		Calendar:           w.Accrual.Calendar,
		PaymentCalendar:    w.Accrual.PaymentCalendar,
		Convention:         w.Accrual.Convention,
		BackwardGeneration: w.Accrual.BackwardGeneration,
		EndOfMonth:         w.Accrual.EndOfMonth,
	}
	var err error
	if w.Accrual.Start != "" {
		if a.Start, err = date.Parse(w.Accrual.Start); err != nil {
			return FloatingLeg{}, &SerializationError{Path: path + ".start", Msg: "invalid date", Err: err}
		}
	}
	if w.Accrual.End != "" {
		if a.End, err = date.Parse(w.Accrual.End); err != nil {
			return FloatingLeg{}, &SerializationError{Path: path + ".end", Msg: "invalid date", Err: err}
		}
	}
	if w.Accrual.Term != "" {
		if a.Term, err = date.ParseTenor(w.Accrual.Term); err != nil {
			return FloatingLeg{}, &SerializationError{Path: path + ".term", Msg: "invalid tenor", Err: err}
		}
	}
	if w.Accrual.Period != "" {
		if a.Period, err = date.ParseTenor(w.Accrual.Period); err != nil {
			return FloatingLeg{}, &SerializationError{Path: path + ".period", Msg: "invalid tenor", Err: err}
		}
	}
	return FloatingLeg{
		Notional: w.Notional,
		Index:    w.Index,
		Spread:   w.Spread,
		Gearing:  w.Gearing,
		Accrual:  a,
	}, nil
}
