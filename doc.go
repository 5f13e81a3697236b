// Package finsec describes financial securities as immutable, validated values.
//
// The security kinds are:
//   - Currencies: FiatCurrency and CryptoCurrency.
//   - Equities: Stock and ETP, listed on a primary exchange.
//   - Indices: DerivedIndex, which can be an underlier but is never delivered.
//   - Derivatives: Future, and Option in its American and European styles, defined on an
//     underlier that is itself a Security.
//   - Fixed income: Bond and InterestRateSwap, with their coupon legs and accrual schedules.
//
// Every security is built by a constructor (NewStock, NewFuture, ...) that normalizes and
// checks its inputs and returns a *ValidationError when they break a rule. Once built, a
// security never changes.
//
// A security is identified by its GSID. Equal compares GSIDs, Identical compares contents.
//
// Securities encode to a mapping form (EncodeStruct), to canonical single line JSON
// (EncodeText) and to YAML (EncodeYAML). Decoding runs the constructors again, so a decoded
// security obeys the same rules as a built one. A Catalog indexes securities by GSID and ticker
// and is stored as a JSONL file.
//
// This package is the foundation of the finsec command line tool.
package finsec
