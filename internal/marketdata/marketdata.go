// Package marketdata resolves current market prices for ticker symbols from
// an external quote provider.
package marketdata

import (
	"context"
	"errors"
	"fmt"
)

// ErrPriceUnavailable reports that no quote could be resolved for a symbol.
// Callers treat it as a partial failure: realized-profit figures never need a
// live price and are still reported.
var ErrPriceUnavailable = errors.New("marketdata: price unavailable")

// FetchError is a per-symbol fetch failure.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch price for %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Source fetches current market prices.
type Source interface {
	// Name returns the provider's display name (e.g. "Yahoo Finance").
	Name() string

	// FetchLatest fetches current prices in cents, keyed by symbol. A source
	// returns as many prices as possible; symbols it could not resolve are
	// reported as FetchErrors rather than failing the whole batch.
	FetchLatest(ctx context.Context, symbols []string) (map[string]int64, []FetchError)
}
