package networth

import (
	"context"
	"log"
	"sort"

	"github.com/fingest/networth/date"
)

// FetchPrices resolves every mapped instrument into a USD daily close-price
// series. Ordinary instruments are fetched in one bulk request over the
// union date range; crypto symbols go through the provider's single-symbol
// path. Every failure is per-symbol: it is logged and excludes that symbol,
// never the batch. Each returned series starts at its own instrument's first
// activity date and is scaled to USD.
func FetchPrices(ctx context.Context, market MarketData, mappings map[InstrumentKey]SymbolMapping, firstActivity map[InstrumentKey]date.Date) map[InstrumentKey]*date.History[float64] {
	// Distinct non-crypto symbols, and the earliest date any of them is
	// needed from.
	var bulk []string
	var earliest date.Date
	seen := make(map[string]bool)
	for key, m := range mappings {
		first := firstActivity[key]
		earliest = date.Min(earliest, first)
		if m.Class == ClassCrypto || seen[m.Symbol] {
			continue
		}
		seen[m.Symbol] = true
		bulk = append(bulk, m.Symbol)
	}
	sort.Strings(bulk) // deterministic request composition

	bySymbol := make(map[string]*date.History[float64])
	if len(bulk) > 0 {
		series, err := market.DailyCloses(ctx, bulk, earliest)
		if err != nil {
			// Degrade to one request per symbol: a single bad symbol must
			// not take the whole batch down.
			log.Printf("bulk price fetch failed (%v), retrying %d symbols individually", err, len(bulk))
			series = make(map[string]*date.History[float64], len(bulk))
			for _, symbol := range bulk {
				h, err := market.CloseHistory(ctx, symbol, earliest)
				if err != nil {
					log.Printf("no price history for %q: %v", symbol, err)
					continue
				}
				series[symbol] = h
			}
		}
		for symbol, h := range series {
			bySymbol[symbol] = h
		}
	}

	for key, m := range mappings {
		if m.Class != ClassCrypto {
			continue
		}
		if _, ok := bySymbol[m.Symbol]; ok {
			continue
		}
		h, err := market.CloseHistory(ctx, m.Symbol, firstActivity[key])
		if err != nil {
			log.Printf("no price history for crypto %q: %v", m.Symbol, err)
			continue
		}
		bySymbol[m.Symbol] = h
	}

	// Per-instrument view: trim to the instrument's own first activity and
	// scale to USD.
	prices := make(map[InstrumentKey]*date.History[float64], len(mappings))
	for key, m := range mappings {
		h, ok := bySymbol[m.Symbol]
		if !ok || h.Len() == 0 {
			log.Printf("excluding %q from valuation: %v for symbol %q", key, ErrNoMarketData, m.Symbol)
			continue
		}
		scaled := new(date.History[float64])
		from := firstActivity[key]
		for on, close := range h.Values() {
			if !from.IsZero() && on.Before(from) {
				continue
			}
			scaled.Append(on, close*m.USDScale)
		}
		if scaled.Len() == 0 {
			log.Printf("excluding %q from valuation: %v after %s", key, ErrNoMarketData, from)
			continue
		}
		prices[key] = scaled
	}
	return prices
}
