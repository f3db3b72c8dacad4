package core

import "context"

// Aggregator provides read-only access to the price aggregation API.
type Aggregator interface {
	// TokenList returns every token tracked by the aggregator.
	TokenList(ctx context.Context) ([]Token, error)
	// Pairs returns every trading pair with its volume, price and liquidity.
	Pairs(ctx context.Context) ([]Pair, error)
	// TokenInfo returns the detail record for a single token address.
	// A nil record with a nil error means the aggregator has no data for it.
	TokenInfo(ctx context.Context, address string) (*TokenInfo, error)
}

// Notifier receives operator messages, newly found pairs and errors.
type Notifier interface {
	Notify(text string)
	OnPair(pair EnrichedPair)
	OnError(err error)
}
