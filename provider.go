package networth

import (
	"context"

	"github.com/fingest/networth/date"
)

// MarketData is the capability the engine needs from a market-data provider.
// Implementations live outside this package (see the yahoo subpackage);
// tests substitute a deterministic fake.
type MarketData interface {
	// DailyCloses returns one daily close-price series per symbol, in the
	// provider's quote currency, covering at least [from, today]. Symbols
	// unknown to the provider are simply absent from the result.
	DailyCloses(ctx context.Context, symbols []string, from date.Date) (map[string]*date.History[float64], error)

	// CloseHistory returns the daily close-price series for one symbol.
	CloseHistory(ctx context.Context, symbol string, from date.Date) (*date.History[float64], error)

	// LatestPrice returns the most recent price for a symbol. Used for FX
	// pairs of the form "<CUR>USD=X".
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}
