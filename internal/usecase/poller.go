package usecase

import (
	"context"
	"sync"
	"time"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	"CoinWatch/pkg/logger"
)

// Poller runs the fetch/evaluate/notify cycle across the asset registry on a
// fixed interval. The first cycle fires immediately on Start. Within a cycle
// every asset is handled on its own goroutine; the cycle joins all of them
// before publishing, and the next tick is honored only after the join, so
// cycles never overlap and late results can never clobber a newer cycle.
type Poller struct {
	assets   []models.Asset
	market   drepo.MarketData
	notifier drepo.Notifier
	events   drepo.EventPublisher
	store    drepo.SignalStore
	metrics  drepo.Metrics
	board    *SnapshotBoard
	interval time.Duration
	log      *logger.Logger

	onCycle func([]models.AssetSnapshot)

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewPoller creates the poll orchestrator. notifier and events may be nil
// when the corresponding destinations are not configured.
func NewPoller(
	assets []models.Asset,
	market drepo.MarketData,
	notifier drepo.Notifier,
	events drepo.EventPublisher,
	store drepo.SignalStore,
	metrics drepo.Metrics,
	board *SnapshotBoard,
	interval time.Duration,
	log *logger.Logger,
) *Poller {
	return &Poller{
		assets:   assets,
		market:   market,
		notifier: notifier,
		events:   events,
		store:    store,
		metrics:  metrics,
		board:    board,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetCycleHook registers a callback invoked with the published snapshots
// after each cycle completes. Must be called before Start.
func (p *Poller) SetCycleHook(fn func([]models.AssetSnapshot)) {
	p.onCycle = fn
}

// Start launches the polling loop. Safe to call once.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.run(ctx)
	p.log.Info("poller started",
		logger.Int("assets", len(p.assets)),
		logger.Duration("interval_ms", p.interval),
	)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.doneCh)

	// first cycle fires immediately, not after the first full interval
	p.cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			start := time.Now()
			p.cycle(ctx)
			if d := time.Since(start); d > p.interval {
				p.metrics.RecordError("cycle_overrun")
				p.log.Warn("cycle overran poll interval",
					logger.Duration("took_ms", d),
					logger.Duration("interval_ms", p.interval),
				)
			}
		}
	}
}

// Shutdown stops the loop and waits for any in-flight cycle to finish.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)
	select {
	case <-p.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cycle fans out over the registry, joins all per-asset results, and
// publishes the fresh snapshot mapping wholesale.
func (p *Poller) cycle(ctx context.Context) {
	start := time.Now()

	var wg sync.WaitGroup
	resCh := make(chan models.AssetSnapshot, len(p.assets))
	for _, a := range p.assets {
		wg.Add(1)
		go func(asset models.Asset) {
			defer wg.Done()
			if snap, ok := p.observe(ctx, asset); ok {
				resCh <- snap
			}
		}(a)
	}
	wg.Wait()
	close(resCh)

	next := make(map[string]models.AssetSnapshot, len(p.assets))
	for snap := range resCh {
		next[snap.Symbol] = snap
	}
	p.board.Replace(next)

	p.metrics.RecordCycle(time.Since(start).Seconds())
	p.log.Debug("cycle complete",
		logger.Int("published", len(next)),
		logger.Int("registered", len(p.assets)),
		logger.Duration("took_ms", time.Since(start)),
	)

	if p.onCycle != nil {
		p.onCycle(p.board.All())
	}
}

// observe handles one asset for one cycle: fetch, evaluate, detect a
// transition, dispatch side effects, update signal memory. A fetch or
// evaluate failure skips the asset and leaves its prior signal memory
// untouched.
func (p *Poller) observe(ctx context.Context, asset models.Asset) (models.AssetSnapshot, bool) {
	fetchStart := time.Now()
	series, err := p.market.FetchSeries(ctx, asset.ID)
	p.metrics.RecordLatency("fetch", time.Since(fetchStart).Seconds())
	if err != nil {
		p.metrics.RecordError("fetch")
		p.log.Error("fetch failed",
			logger.String("symbol", asset.Symbol),
			logger.Error(err),
		)
		return models.AssetSnapshot{}, false
	}

	latest, sig, err := Evaluate(series)
	if err != nil {
		p.metrics.RecordError("evaluate")
		p.log.Error("evaluate failed",
			logger.String("symbol", asset.Symbol),
			logger.Error(err),
		)
		return models.AssetSnapshot{}, false
	}
	p.metrics.RecordLastPrice(asset.Symbol, latest)

	prev, seen, err := p.store.Get(ctx, asset.Symbol)
	if err != nil {
		// degrade to "never observed": no notification this cycle
		seen = false
		p.metrics.RecordError("store")
		p.log.Warn("signal store read failed",
			logger.String("symbol", asset.Symbol),
			logger.Error(err),
		)
	}

	if seen && prev != sig {
		p.raise(ctx, models.SignalChange{
			Symbol: asset.Symbol,
			From:   prev,
			To:     sig,
			Price:  latest,
			At:     time.Now().UTC(),
		})
	}

	// memory is updated unconditionally once evaluation completed
	if err := p.store.Set(ctx, asset.Symbol, sig); err != nil {
		p.metrics.RecordError("store")
		p.log.Warn("signal store write failed",
			logger.String("symbol", asset.Symbol),
			logger.Error(err),
		)
	}

	return models.AssetSnapshot{
		Symbol:       asset.Symbol,
		CurrentPrice: latest,
		Signal:       sig,
		SignalLabel:  sig.Label(),
		Series:       series,
		UpdatedAt:    time.Now().UTC(),
	}, true
}

// raise records one signal transition and dispatches its side effects.
// Dispatch failures are logged and counted only; they never propagate.
func (p *Poller) raise(ctx context.Context, change models.SignalChange) {
	p.board.AddAlert(change)
	p.metrics.RecordAlert(change.Symbol)
	p.log.Info("signal changed",
		logger.String("symbol", change.Symbol),
		logger.String("from", string(change.From)),
		logger.String("to", string(change.To)),
		logger.Float64("price", change.Price),
	)

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, change); err != nil {
			p.metrics.RecordError("notify")
			p.log.Error("notify failed",
				logger.String("symbol", change.Symbol),
				logger.Error(err),
			)
		}
	}

	if p.events != nil {
		if err := p.events.Publish(ctx, change); err != nil {
			p.metrics.RecordError("publish")
			p.log.Warn("event publish failed",
				logger.String("symbol", change.Symbol),
				logger.Error(err),
			)
		}
	}
}
