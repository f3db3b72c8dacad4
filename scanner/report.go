package scanner

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/pairwatch/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the volumes of the enriched pairs of one scan.
type Stats struct {
	Count        int
	TotalVolume  float64
	MeanVolume   float64
	MedianVolume float64
}

// Summarize computes volume statistics over the enriched output.
func Summarize(pairs []core.EnrichedPair) Stats {
	if len(pairs) == 0 {
		return Stats{}
	}

	volumes := make([]float64, len(pairs))
	for i, pair := range pairs {
		volumes[i] = pair.Volume24h
	}
	sort.Float64s(volumes)

	return Stats{
		Count:        len(pairs),
		TotalVolume:  floats.Sum(volumes),
		MeanVolume:   stat.Mean(volumes, nil),
		MedianVolume: stat.Quantile(0.5, stat.Empirical, volumes, nil),
	}
}

// WriteReport renders the human-readable scan report: the enriched pairs
// table, the skip breakdown and a histogram of enriched volumes.
func WriteReport(w io.Writer, items []core.ScanItem) error {
	enriched := Enriched(items)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Symbol", "Volume 24h", "Price", "Liquidity", "Market Cap", "Holders", "Venues"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for _, pair := range enriched {
		table.Append([]string{
			pair.Name,
			pair.Symbol,
			fmt.Sprintf("$%.2f", pair.Volume24h),
			fmt.Sprintf("$%.8f", pair.PriceUSD),
			fmt.Sprintf("$%.2f", pair.LiquidityUSD),
			fmt.Sprintf("$%.2f", pair.MarketCap),
			strconv.Itoa(pair.HolderCount),
			strings.Join(pair.Dexes, ", "),
		})
	}
	table.Render()

	skips := countSkips(items)
	fmt.Fprintf(w, "\n%d of %d pairs qualified", len(enriched), len(items))
	for _, reason := range []core.SkipReason{
		core.SkipBelowThreshold,
		core.SkipNoBaseToken,
		core.SkipNoTokenInfo,
		core.SkipFetchError,
	} {
		if skips[reason] > 0 {
			fmt.Fprintf(w, ", %s: %d", reason, skips[reason])
		}
	}
	fmt.Fprintln(w)

	stats := Summarize(enriched)
	if stats.Count == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nTotal volume:  $%.2f\n", stats.TotalVolume)
	fmt.Fprintf(w, "Mean volume:   $%.2f\n", stats.MeanVolume)
	fmt.Fprintf(w, "Median volume: $%.2f\n", stats.MedianVolume)

	// A histogram needs a spread; a single pair has none.
	if stats.Count < 2 {
		return nil
	}

	volumes := make([]float64, len(enriched))
	for i, pair := range enriched {
		volumes[i] = pair.Volume24h
	}

	fmt.Fprintln(w, "\n------ VOLUME DISTRIBUTION (USD) ------")
	hist := histogram.Hist(10, volumes)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}

func countSkips(items []core.ScanItem) map[core.SkipReason]int {
	skips := make(map[core.SkipReason]int)
	for _, item := range items {
		if item.Skip != core.SkipNone {
			skips[item.Skip]++
		}
	}
	return skips
}
