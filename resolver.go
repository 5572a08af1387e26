package networth

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Resolver maps broker instrument identifiers to market-data symbols. It is
// a pure table lookup plus, for non-USD listings, one side query for the
// currency's USD rate. For a given (ticker, currency, day of FX lookup) the
// result is deterministic.
type Resolver struct {
	rules  RuleTable
	market MarketData
}

// NewResolver returns a resolver over the given rule table. market is only
// queried for FX rates.
func NewResolver(rules RuleTable, market MarketData) *Resolver {
	return &Resolver{rules: rules, market: market}
}

// Resolve maps one InstrumentKey. crypto is the statement's own asset-class
// flag. Rules are ordered, first match wins:
//
//  1. crypto assets pair the ticker with the currency ("BTC-USD")
//  2. fixed renames, independent of currency (indices, corporate renames)
//  3. USD listings keep their ticker unchanged
//  4. other currencies rewrite the ticker per the currency's table and scale
//     by the currency's latest USD rate
//
// A (currency, ticker) pair absent from the table returns an error wrapping
// ErrUnresolvedSymbol carrying both for diagnostics; this is terminal but
// non-fatal.
func (r *Resolver) Resolve(ctx context.Context, key InstrumentKey, crypto bool) (SymbolMapping, error) {
	ticker, currency := key.split()

	if crypto {
		return SymbolMapping{Symbol: ticker + "-" + currency, USDScale: 1, Class: ClassCrypto}, nil
	}

	if symbol, ok := r.rules.Renames[ticker]; ok {
		class := ClassEquity
		if strings.HasPrefix(symbol, "^") {
			class = ClassIndex
		}
		return SymbolMapping{Symbol: symbol, USDScale: 1, Class: class}, nil
	}

	if currency == "USD" {
		return SymbolMapping{Symbol: ticker, USDScale: 1, Class: ClassEquity}, nil
	}

	rule, ok := r.rules.Currencies[currency]
	if !ok {
		return SymbolMapping{}, fmt.Errorf("%w: currency %q ticker %q", ErrUnresolvedSymbol, currency, ticker)
	}
	symbol, ok := rule.Tickers[ticker]
	if !ok {
		return SymbolMapping{}, fmt.Errorf("%w: currency %q ticker %q", ErrUnresolvedSymbol, currency, ticker)
	}

	rate, err := r.market.LatestPrice(ctx, rule.Pair)
	if err != nil {
		return SymbolMapping{}, fmt.Errorf("fx rate %s for %q: %w", rule.Pair, key, err)
	}
	unit := rule.Unit
	if unit == 0 {
		unit = 1
	}
	return SymbolMapping{Symbol: symbol, USDScale: rate / unit, Class: ClassEquity}, nil
}

// ResolveAll maps every key, logging and dropping the unresolved ones. The
// returned map only holds fully resolved instruments.
func (r *Resolver) ResolveAll(ctx context.Context, keys []InstrumentKey, isCrypto func(InstrumentKey) bool) map[InstrumentKey]SymbolMapping {
	mappings := make(map[InstrumentKey]SymbolMapping, len(keys))
	for _, key := range keys {
		m, err := r.Resolve(ctx, key, isCrypto(key))
		if err != nil {
			log.Printf("excluding %q from valuation: %v", key, err)
			continue
		}
		mappings[key] = m
	}
	return mappings
}
