package networth

import "strings"

// InstrumentKey is the broker's raw instrument identifier, e.g. "AAPL/USD" or
// "RR.l/GBX". It is composed of a local ticker and a listing currency or
// market code, and is the join key across all per-instrument series.
//
// The key is opaque to every stage except split(), so that it is never parsed
// twice inconsistently.
type InstrumentKey string

// split separates the local ticker from the listing currency. The ticker
// itself may contain dots ("RR.l"), so the separator is the last slash.
func (k InstrumentKey) split() (ticker, currency string) {
	i := strings.LastIndex(string(k), "/")
	if i < 0 {
		return string(k), ""
	}
	return string(k)[:i], string(k)[i+1:]
}

// Ticker returns the broker's local ticker part of the key.
func (k InstrumentKey) Ticker() string {
	ticker, _ := k.split()
	return ticker
}

// Currency returns the listing currency or market code part of the key.
func (k InstrumentKey) Currency() string {
	_, currency := k.split()
	return currency
}

// AssetClass classifies a resolved symbol. The market-data provider handles
// some classes on separate code paths (crypto in particular).
type AssetClass string

const (
	ClassEquity AssetClass = "equity"
	ClassIndex  AssetClass = "index"
	ClassCrypto AssetClass = "crypto"
	ClassFX     AssetClass = "fx"
)

// SymbolMapping is the fully resolved form of an InstrumentKey: the
// market-data symbol to query, the factor converting a quoted price to USD,
// and the asset class driving the fetch path.
type SymbolMapping struct {
	Symbol   string
	USDScale float64
	Class    AssetClass
}
