// Package scanner implements the volume-threshold scan of the aggregator
// pairs list, enriching every qualifying pair with token metadata.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
)

// Scanner produces the set of currently-tracked pairs whose 24h volume meets
// a USD threshold. It keeps no state between scans.
type Scanner struct {
	aggregator   core.Aggregator
	log          logger.Logger
	showProgress bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProgress renders a progress bar over the pair loop, one tick per pair.
func WithProgress() Option {
	return func(s *Scanner) {
		s.showProgress = true
	}
}

func New(aggregator core.Aggregator, log logger.Logger, options ...Option) *Scanner {
	scanner := &Scanner{
		aggregator: aggregator,
		log:        log,
	}

	for _, option := range options {
		option(scanner)
	}

	return scanner
}

// Scan walks the pairs list once, in input order, and reports a ScanItem per
// pair. A failed top-level fetch degrades to an empty list; a failure on a
// single pair is recorded on its item and never aborts the walk. The only
// error Scan itself returns is context cancellation between items.
func (s *Scanner) Scan(ctx context.Context, threshold float64) ([]core.ScanItem, error) {
	if threshold < 0 {
		return nil, core.ErrNegativeThreshold
	}

	s.log.Infof("scanning for pairs with minimum volume of $%.2f", threshold)

	pairs := s.fetchPairs(ctx)
	tokens := s.fetchTokens(ctx)

	// Address lookup, last write wins for duplicate addresses.
	tokenByAddress := lo.KeyBy(tokens, func(t core.Token) string {
		return t.Address
	})

	var bar *progressbar.ProgressBar
	if s.showProgress {
		bar = progressbar.Default(int64(len(pairs)))
	}

	items := make([]core.ScanItem, 0, len(pairs))
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item := s.scanPair(ctx, pair, threshold, tokenByAddress)
		items = append(items, item)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				s.log.Warnf("update progress bar fail: %v", err)
			}
		}

		if item.Qualified() {
			s.logEnriched(item.Enriched)
		}
	}

	return items, nil
}

// scanPair applies the filter-and-enrich steps to one pair.
func (s *Scanner) scanPair(
	ctx context.Context,
	pair core.Pair,
	threshold float64,
	tokenByAddress map[string]core.Token,
) core.ScanItem {
	item := core.ScanItem{Pair: pair}

	volume := pair.Volume24h.Float64()
	if volume < threshold {
		item.Skip = core.SkipBelowThreshold
		return item
	}

	address := pair.BaseToken.Address
	if address == "" {
		item.Skip = core.SkipNoBaseToken
		return item
	}

	// One round trip per qualifying pair. No batching, no caching.
	info, err := s.aggregator.TokenInfo(ctx, address)
	if err != nil {
		s.log.WithError(err).Errorf("failed to process pair %s", address)
		item.Skip = core.SkipFetchError
		item.Err = err
		return item
	}
	if info.Empty() {
		item.Skip = core.SkipNoTokenInfo
		return item
	}

	item.Enriched = assemble(pair, tokenByAddress[address], info)
	return item
}

// assemble merges the pair record, the token-list entry and the detail
// record. The detail record wins for name and symbol; the token-list entry
// only fills the gaps.
func assemble(pair core.Pair, token core.Token, info *core.TokenInfo) *core.EnrichedPair {
	name, symbol := info.Name, info.Symbol
	if name == "" {
		name = token.Name
	}
	if symbol == "" {
		symbol = token.Symbol
	}

	return &core.EnrichedPair{
		Name:         name,
		Symbol:       symbol,
		Address:      pair.BaseToken.Address,
		Volume24h:    pair.Volume24h.Float64(),
		PriceUSD:     pair.PriceUSD.Float64(),
		LiquidityUSD: pair.Liquidity.USD.Float64(),
		MarketCap:    info.MarketCap.Float64(),
		HolderCount:  info.HolderCount,
		Dexes:        pair.Dexes,
		FoundAt:      time.Now(),
	}
}

// fetchPairs returns the pairs list, degrading to empty on failure.
func (s *Scanner) fetchPairs(ctx context.Context) []core.Pair {
	pairs, err := s.aggregator.Pairs(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch pairs, nothing to scan")
		return nil
	}

	s.log.Infof("fetched %d pairs from aggregator", len(pairs))
	return pairs
}

// fetchTokens returns the token list, degrading to empty on failure.
func (s *Scanner) fetchTokens(ctx context.Context) []core.Token {
	tokens, err := s.aggregator.TokenList(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch token list")
		return nil
	}

	return tokens
}

func (s *Scanner) logEnriched(pair *core.EnrichedPair) {
	s.log.WithFields(map[string]any{
		"symbol":    pair.Symbol,
		"address":   pair.Address,
		"volume":    fmt.Sprintf("%.2f", pair.Volume24h),
		"liquidity": fmt.Sprintf("%.2f", pair.LiquidityUSD),
		"holders":   pair.HolderCount,
	}).Infof("high volume pair found: %s (%s)", pair.Name, pair.Symbol)
}

// Enriched extracts the enriched records of a scan, preserving the relative
// order of the input pairs list.
func Enriched(items []core.ScanItem) []core.EnrichedPair {
	return lo.FilterMap(items, func(item core.ScanItem, _ int) (core.EnrichedPair, bool) {
		if !item.Qualified() {
			return core.EnrichedPair{}, false
		}
		return *item.Enriched, true
	})
}
