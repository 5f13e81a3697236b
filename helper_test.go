package finsec

import (
	"time"

	"github.com/etnz/finsec/date"
	"github.com/shopspring/decimal"
)

// must panics on error, for package level fixtures.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	usd = must(NewFiatCurrency(FiatCurrencyParams{GSID: 1, Ticker: "USD", Nation: "United States"}))
	eur = must(NewFiatCurrency(FiatCurrencyParams{GSID: 2, Ticker: "EUR", Nation: "European Union"}))
	btc = must(NewCryptoCurrency(CryptoCurrencyParams{GSID: 3, Ticker: "BTC", Description: "Bitcoin"}))

	aapl = must(NewStock(StockParams{
		GSID:            10,
		Ticker:          "AAPL",
		PrimaryExchange: NASDAQ,
		Description:     "Apple Inc.",
		Currency:        usd,
		Identifiers:     []Identifier{must(NewISIN("US0378331005")), must(NewFIGI("BBG000B9XRY4"))},
	}))
	spy = must(NewETP(ETPParams{
		GSID:            11,
		Ticker:          "SPY",
		PrimaryExchange: ARCA,
		Issuer:          "State Street",
		Description:     "SPDR S&P 500 ETF",
		Currency:        usd,
	}))
	spx = must(NewDerivedIndex(DerivedIndexParams{GSID: 12, Ticker: "SPX", Issuer: "S&P Dow Jones Indices", Currency: usd}))

	esm5 = must(NewFuture(FutureParams{
		GSID:             20,
		Ticker:           "ESM5",
		Underlying:       spx,
		ExpiryDate:       "2025-06-20",
		PrimaryExchange:  CME,
		TickSize:         dec("0.25"),
		Multiplier:       dec("50"),
		ExpirySeriesType: SeriesQuarterly,
		ExpiryTimeOfDay:  ExpiryOpen,
	}))
	spyCall = must(NewAmericanOption(OptionParams{
		GSID:            30,
		Underlying:      spy,
		CallPut:         "call",
		Strike:          dec("500"),
		ExpiryDate:      date.New(2025, time.June, 20),
		PrimaryExchange: CBOE,
		Multiplier:      dec("100"),
	}))
	esPut = must(NewEuropeanOption(OptionParams{
		GSID:            31,
		Ticker:          "ESM5 P5000",
		Underlying:      esm5,
		CallPut:         "p",
		Strike:          dec("5000"),
		ExpiryDate:      "2025-06-20",
		PrimaryExchange: CME,
		Multiplier:      dec("50"),
	}))

	treasury = must(NewBond(BondParams{
		GSID:      50,
		Ticker:    "T 4.5 05/15/34",
		Issuer:    "US Treasury",
		Currency:  usd,
		FaceValue: dec("1000"),
		Coupon: FixedLeg{
			Rate: dec("0.045"),
			Accrual: AccrualInfo{
				Start:     date.New(2024, time.May, 15),
				Term:      date.NewTenor(10, date.Years),
				DayCount:  ActualActual,
				Frequency: 2,
			},
		},
		SettleDays: 1,
	}))
	sofrSwap = must(NewInterestRateSwap(InterestRateSwapParams{
		GSID:     60,
		Ticker:   "USD SOFR 5Y",
		Currency: usd,
		FixedLeg: FixedLeg{
			Notional: dec("1000000"),
			Rate:     dec("0.04"),
			Accrual:  AccrualInfo{Start: date.New(2024, time.January, 2), Term: date.NewTenor(5, date.Years), DayCount: Thirty360, Period: date.NewTenor(6, date.Months)},
		},
		FloatingLeg: FloatingLeg{
			Notional: dec("1000000"),
			Index:    "SOFR",
			Spread:   dec("0.001"),
			Accrual:  AccrualInfo{Start: date.New(2024, time.January, 2), Term: date.NewTenor(5, date.Years), DayCount: Actual360, Period: date.NewTenor(3, date.Months)},
		},
		PayFixed: true,
	}))
)

// allFixtures returns one security of every kind.
func allFixtures() []Security {
	return []Security{usd, eur, btc, aapl, spy, spx, esm5, spyCall, esPut, treasury, sofrSwap}
}
