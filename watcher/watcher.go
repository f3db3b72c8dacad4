// Package watcher runs the scan loop: scan, alert new qualifying pairs,
// sleep, repeat until the context is done.
package watcher

import (
	"context"
	"time"

	"github.com/StudioSol/set"
	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	"github.com/raykavin/pairwatch/scanner"
)

const defaultInterval = 5 * time.Minute

// Watcher periodically scans the aggregator and pushes an alert for every
// enriched pair it has not alerted before during this run. The seen set is
// in-memory only; a restart starts clean.
type Watcher struct {
	scanner   *scanner.Scanner
	notifier  core.Notifier
	threshold float64
	interval  time.Duration
	seen      *set.LinkedHashSetString
	log       logger.Logger
}

func New(
	scan *scanner.Scanner,
	notifier core.Notifier,
	settings core.ScannerSettings,
	log logger.Logger,
) *Watcher {
	interval := settings.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Watcher{
		scanner:   scan,
		notifier:  notifier,
		threshold: settings.VolumeThreshold,
		interval:  interval,
		seen:      set.NewLinkedHashSetString(),
		log:       log,
	}
}

// Run blocks until ctx is done. A failed cycle degrades to an empty one and
// the loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Infof("watching pairs every %s, volume threshold $%.2f", w.interval, w.threshold)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.cycle(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// cycle runs a single scan-and-alert pass.
func (w *Watcher) cycle(ctx context.Context) {
	items, err := w.scanner.Scan(ctx, w.threshold)
	if err != nil {
		w.log.WithError(err).Error("scan cycle aborted")
		return
	}

	alerted := 0
	for _, pair := range scanner.Enriched(items) {
		if w.seen.InArray(pair.Address) {
			continue
		}

		w.seen.Add(pair.Address)
		w.notifier.OnPair(pair)
		alerted++
	}

	w.log.Infof("scan cycle done: %d pairs scanned, %d new alerts", len(items), alerted)
}
