package watcher

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	zerologadapter "github.com/raykavin/pairwatch/logger/zerolog"
	"github.com/raykavin/pairwatch/scanner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAggregator struct {
	pairs []core.Pair
	infos map[string]*core.TokenInfo
}

func (f *fakeAggregator) Pairs(context.Context) ([]core.Pair, error) {
	return f.pairs, nil
}

func (f *fakeAggregator) TokenList(context.Context) ([]core.Token, error) {
	return nil, nil
}

func (f *fakeAggregator) TokenInfo(_ context.Context, address string) (*core.TokenInfo, error) {
	return f.infos[address], nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []core.EnrichedPair
	gotOne chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{gotOne: make(chan struct{}, 64)}
}

func (n *recordingNotifier) Notify(string) {}
func (n *recordingNotifier) OnError(error) {}

func (n *recordingNotifier) OnPair(pair core.EnrichedPair) {
	n.mu.Lock()
	n.alerts = append(n.alerts, pair)
	n.mu.Unlock()
	n.gotOne <- struct{}{}
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := zerolog.New(io.Discard)
	return zerologadapter.NewAdapter(&l)
}

func TestWatcher_AlertsEachPairOnce(t *testing.T) {
	agg := &fakeAggregator{
		pairs: []core.Pair{
			{BaseToken: core.Asset{Address: "a"}, Volume24h: core.Float(5000)},
			{BaseToken: core.Asset{Address: "b"}, Volume24h: core.Float(100)},
		},
		infos: map[string]*core.TokenInfo{
			"a": {Name: "Token A", Symbol: "TKA"},
		},
	}

	notifier := newRecordingNotifier()
	w := New(
		scanner.New(agg, testLogger(t)),
		notifier,
		core.ScannerSettings{VolumeThreshold: 1000, Interval: 5 * time.Millisecond},
		testLogger(t),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// First cycle alerts the qualifying pair.
	select {
	case <-notifier.gotOne:
	case <-time.After(2 * time.Second):
		t.Fatal("no alert within deadline")
	}

	// Give a few more cycles a chance to re-alert, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)

	// Same pair, same run: exactly one alert.
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, "TKA", notifier.alerts[0].Symbol)
}
