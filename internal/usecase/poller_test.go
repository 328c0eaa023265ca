package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	"CoinWatch/internal/repository"
	"CoinWatch/pkg/logger"
)

type fakeMarket struct {
	mu     sync.Mutex
	series map[string]models.PriceSeries
	errs   map[string]error
}

func (f *fakeMarket) FetchSeries(_ context.Context, assetID string) (models.PriceSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[assetID]; ok {
		return nil, err
	}
	s, ok := f.series[assetID]
	if !ok {
		return nil, errors.New("unknown asset")
	}
	return s, nil
}

func (f *fakeMarket) set(assetID string, s models.PriceSeries) {
	f.mu.Lock()
	f.series[assetID] = s
	f.mu.Unlock()
}

type fakeNotifier struct {
	mu      sync.Mutex
	changes []models.SignalChange
	err     error
}

func (f *fakeNotifier) Notify(_ context.Context, change models.SignalChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, change)
	return f.err
}

func (f *fakeNotifier) calls() []models.SignalChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SignalChange, len(f.changes))
	copy(out, f.changes)
	return out
}

type fakePublisher struct {
	mu      sync.Mutex
	changes []models.SignalChange
}

func (f *fakePublisher) Publish(_ context.Context, change models.SignalChange) error {
	f.mu.Lock()
	f.changes = append(f.changes, change)
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordCycle(float64)             {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordLastPrice(string, float64) {}
func (nopMetrics) RecordAlert(string)              {}
func (nopMetrics) RecordLatency(string, float64)   {}

// sellSeries has a 20-sample average of 100 and a latest price of 110:
// one low point, eighteen flat, then the jump to 110.
func sellSeries() models.PriceSeries {
	prices := []float64{90}
	for i := 0; i < 18; i++ {
		prices = append(prices, 100)
	}
	prices = append(prices, 110)
	return mkSeries(prices...)
}

// buySeries mirrors sellSeries below the band: average 100, latest 90.
func buySeries() models.PriceSeries {
	prices := []float64{110}
	for i := 0; i < 18; i++ {
		prices = append(prices, 100)
	}
	prices = append(prices, 90)
	return mkSeries(prices...)
}

func newTestPoller(market *fakeMarket, notifier *fakeNotifier, events *fakePublisher, assets ...models.Asset) *Poller {
	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.Symbol)
	}
	board := NewSnapshotBoard(symbols)
	var ev drepo.EventPublisher
	if events != nil {
		ev = events
	}
	p := NewPoller(assets, market, notifier, ev, repository.NewMemorySignalStore(), nopMetrics{}, board, time.Minute, logger.Nop())
	return p
}

func TestCycleEndToEnd(t *testing.T) {
	market := &fakeMarket{series: map[string]models.PriceSeries{"bitcoin": sellSeries()}}
	notifier := &fakeNotifier{}
	p := newTestPoller(market, notifier, nil, models.Asset{ID: "bitcoin", Symbol: "BTC"})

	p.cycle(context.Background())

	snap, ok := p.board.Get("BTC")
	if !ok {
		t.Fatal("expected BTC snapshot")
	}
	if snap.Signal != models.SignalSell {
		t.Fatalf("expected Sell, got %v", snap.Signal)
	}
	if snap.CurrentPrice != 110 {
		t.Fatalf("expected latest 110, got %v", snap.CurrentPrice)
	}
	if len(snap.Series) != 20 {
		t.Fatalf("expected 20-point series, got %d", len(snap.Series))
	}
	if snap.SignalLabel != "Sell 📉" {
		t.Fatalf("unexpected label %q", snap.SignalLabel)
	}
}

func TestTransitionDetection(t *testing.T) {
	ctx := context.Background()
	market := &fakeMarket{series: map[string]models.PriceSeries{"bitcoin": sellSeries()}}
	notifier := &fakeNotifier{}
	events := &fakePublisher{}
	p := newTestPoller(market, notifier, events, models.Asset{ID: "bitcoin", Symbol: "BTC"})

	// first observation: signal recorded, nothing dispatched
	p.cycle(ctx)
	if n := len(notifier.calls()); n != 0 {
		t.Fatalf("first cycle must not notify, got %d calls", n)
	}
	if sig, ok, _ := p.store.Get(ctx, "BTC"); !ok || sig != models.SignalSell {
		t.Fatalf("memory not updated on first cycle: %v ok=%v", sig, ok)
	}

	// same signal again: still quiet
	p.cycle(ctx)
	if n := len(notifier.calls()); n != 0 {
		t.Fatalf("unchanged signal must not notify, got %d calls", n)
	}

	// transition to Buy: exactly one notification and one event
	market.set("bitcoin", buySeries())
	p.cycle(ctx)

	calls := notifier.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(calls))
	}
	if calls[0].Symbol != "BTC" || calls[0].To != models.SignalBuy || calls[0].From != models.SignalSell {
		t.Fatalf("unexpected change %+v", calls[0])
	}
	if calls[0].Price != 90 {
		t.Fatalf("unexpected price %v", calls[0].Price)
	}
	if len(events.changes) != 1 {
		t.Fatalf("expected one published event, got %d", len(events.changes))
	}
	if sig, _, _ := p.store.Get(ctx, "BTC"); sig != models.SignalBuy {
		t.Fatalf("memory not updated after transition: %v", sig)
	}

	alerts := p.board.Alerts(10)
	if len(alerts) != 1 || alerts[0].To != models.SignalBuy {
		t.Fatalf("unexpected alert history %+v", alerts)
	}
}

func TestFetchFailureIsolation(t *testing.T) {
	ctx := context.Background()
	market := &fakeMarket{
		series: map[string]models.PriceSeries{"ethereum": sellSeries()},
		errs:   map[string]error{"bitcoin": errors.New("rate limited")},
	}
	notifier := &fakeNotifier{}
	p := newTestPoller(market, notifier, nil,
		models.Asset{ID: "bitcoin", Symbol: "BTC"},
		models.Asset{ID: "ethereum", Symbol: "ETH"},
	)

	// seed BTC memory, then make its fetch fail
	if err := p.store.Set(ctx, "BTC", models.SignalHold); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	p.cycle(ctx)

	if _, ok := p.board.Get("BTC"); ok {
		t.Fatal("failed asset must be absent from the snapshot")
	}
	if _, ok := p.board.Get("ETH"); !ok {
		t.Fatal("healthy asset must still publish")
	}
	// the failure must not clear prior memory
	if sig, ok, _ := p.store.Get(ctx, "BTC"); !ok || sig != models.SignalHold {
		t.Fatalf("prior memory disturbed: %v ok=%v", sig, ok)
	}
}

func TestSnapshotReplacedWholesale(t *testing.T) {
	ctx := context.Background()
	market := &fakeMarket{series: map[string]models.PriceSeries{
		"bitcoin":  sellSeries(),
		"ethereum": sellSeries(),
	}}
	p := newTestPoller(market, &fakeNotifier{}, nil,
		models.Asset{ID: "bitcoin", Symbol: "BTC"},
		models.Asset{ID: "ethereum", Symbol: "ETH"},
	)

	p.cycle(ctx)
	if got := len(p.board.All()); got != 2 {
		t.Fatalf("expected 2 snapshots, got %d", got)
	}

	// ETH starts failing: it must vanish, not linger from the prior cycle
	market.mu.Lock()
	market.errs = map[string]error{"ethereum": errors.New("down")}
	market.mu.Unlock()
	p.cycle(ctx)

	all := p.board.All()
	if len(all) != 1 || all[0].Symbol != "BTC" {
		t.Fatalf("expected only BTC, got %+v", all)
	}
}

func TestNotifyFailureDoesNotBlockMemory(t *testing.T) {
	ctx := context.Background()
	market := &fakeMarket{series: map[string]models.PriceSeries{"bitcoin": sellSeries()}}
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	p := newTestPoller(market, notifier, nil, models.Asset{ID: "bitcoin", Symbol: "BTC"})

	p.cycle(ctx)
	market.set("bitcoin", buySeries())
	p.cycle(ctx)

	// dispatch failed, memory still advanced
	if sig, _, _ := p.store.Get(ctx, "BTC"); sig != models.SignalBuy {
		t.Fatalf("memory must update despite notify failure, got %v", sig)
	}
	if _, ok := p.board.Get("BTC"); !ok {
		t.Fatal("snapshot must still publish despite notify failure")
	}
}

func TestCycleHookSeesPublishedSnapshots(t *testing.T) {
	market := &fakeMarket{series: map[string]models.PriceSeries{"bitcoin": sellSeries()}}
	p := newTestPoller(market, &fakeNotifier{}, nil, models.Asset{ID: "bitcoin", Symbol: "BTC"})

	var mu sync.Mutex
	var seen [][]models.AssetSnapshot
	p.SetCycleHook(func(snaps []models.AssetSnapshot) {
		mu.Lock()
		seen = append(seen, snaps)
		mu.Unlock()
	})

	p.cycle(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || len(seen[0]) != 1 || seen[0][0].Symbol != "BTC" {
		t.Fatalf("unexpected hook payload %+v", seen)
	}
}

func TestStartRunsImmediateCycleAndShutsDown(t *testing.T) {
	market := &fakeMarket{series: map[string]models.PriceSeries{"bitcoin": sellSeries()}}
	p := newTestPoller(market, &fakeNotifier{}, nil, models.Asset{ID: "bitcoin", Symbol: "BTC"})
	p.interval = time.Hour // only the immediate cycle should run

	p.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := p.board.Get("BTC"); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("immediate cycle did not publish in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
