package scanner

import (
	"bytes"
	"testing"

	"github.com/raykavin/pairwatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	pairs := []core.EnrichedPair{
		{Volume24h: 1000},
		{Volume24h: 2000},
		{Volume24h: 6000},
	}

	stats := Summarize(pairs)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 9000.0, stats.TotalVolume)
	assert.Equal(t, 3000.0, stats.MeanVolume)
	assert.Equal(t, 2000.0, stats.MedianVolume)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Zero(t, Summarize(nil))
}

func TestWriteReport(t *testing.T) {
	items := []core.ScanItem{
		{
			Pair: core.Pair{BaseToken: core.Asset{Address: "a"}},
			Enriched: &core.EnrichedPair{
				Name: "Token A", Symbol: "TKA", Address: "a",
				Volume24h: 1500, PriceUSD: 0.5, LiquidityUSD: 10000,
				MarketCap: 50000, HolderCount: 321, Dexes: []string{"Orca", "Raydium"},
			},
		},
		{Pair: core.Pair{}, Skip: core.SkipBelowThreshold},
		{Pair: core.Pair{}, Skip: core.SkipNoTokenInfo},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, items))

	out := buf.String()
	assert.Contains(t, out, "TKA")
	assert.Contains(t, out, "Orca, Raydium")
	assert.Contains(t, out, "1 of 3 pairs qualified")
	assert.Contains(t, out, "below_threshold: 1")
	assert.Contains(t, out, "no_token_info: 1")
	assert.Contains(t, out, "Total volume:")
}
