package core

import "time"

// ---------------------
// Aggregator records
// ---------------------

// Token is a single entry of the aggregator token list.
type Token struct {
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals int      `json:"decimals"`
	LogoURI  string   `json:"logoURI"`
	Tags     []string `json:"tags"`
}

// Asset identifies one side of a trading pair.
type Asset struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity holds the USD-denominated liquidity of a pair.
type Liquidity struct {
	USD Float `json:"usd"`
}

// Pair is a raw record of the aggregator pairs endpoint.
type Pair struct {
	TickerID   string    `json:"ticker_id"`
	BaseToken  Asset     `json:"baseToken"`
	QuoteToken Asset     `json:"quoteToken"`
	Volume24h  Float     `json:"volume24h"`
	PriceUSD   Float     `json:"priceUsd"`
	Liquidity  Liquidity `json:"liquidity"`
	Dexes      []string  `json:"dexes"`
}

// TokenInfo is the per-token detail record of the aggregator.
type TokenInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	HolderCount int    `json:"holder_count"`
	MarketCap   Float  `json:"market_cap"`
}

// Empty reports whether the detail lookup carried no usable data.
func (t *TokenInfo) Empty() bool {
	return t == nil || (t.Name == "" && t.Symbol == "")
}

// ---------------------
// Scan results
// ---------------------

// EnrichedPair combines a qualifying pair record with the descriptive
// metadata of its base token. It lives only for the duration of a scan.
type EnrichedPair struct {
	Name         string
	Symbol       string
	Address      string
	Volume24h    float64
	PriceUSD     float64
	LiquidityUSD float64
	MarketCap    float64
	HolderCount  int
	Dexes        []string
	FoundAt      time.Time
}

// SkipReason tells why a pair was left out of the scan output.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipBelowThreshold SkipReason = "below_threshold"
	SkipNoBaseToken    SkipReason = "no_base_token"
	SkipNoTokenInfo    SkipReason = "no_token_info"
	SkipFetchError     SkipReason = "fetch_error"
)

// ScanItem is the per-pair outcome of a scan. Either Enriched is set and
// Skip is SkipNone, or Skip carries the exact cause and Err the recorded
// failure when one occurred.
type ScanItem struct {
	Pair     Pair
	Skip     SkipReason
	Err      error
	Enriched *EnrichedPair
}

// Qualified reports whether the pair made it into the enriched output.
func (s ScanItem) Qualified() bool {
	return s.Skip == SkipNone && s.Enriched != nil
}

// ---------------------
// Messaging records
// ---------------------

// InboundMessage is the reshaped form of a single bot update.
type InboundMessage struct {
	ChatID   int64
	Username string
	Time     time.Time
}

// Button is one inline keyboard button, rendered as {text, url}.
type Button struct {
	Text string
	URL  string
}

// BroadcastResult records the outcome of one recipient of a broadcast.
// MessageID carries the API response on success, Error the captured failure.
type BroadcastResult struct {
	ChatID    int64
	MessageID int
	Success   bool
	Error     string
}
