package repository

import (
	"context"

	"CoinWatch/internal/domain/models"
)

// MarketData retrieves the sampled price history for one asset over the
// configured lookback window. Implementations do not retry and do not cache.
type MarketData interface {
	FetchSeries(ctx context.Context, assetID string) (models.PriceSeries, error)
}

// Notifier dispatches a signal-change alert to the configured destination.
type Notifier interface {
	Notify(ctx context.Context, change models.SignalChange) error
}

// EventPublisher mirrors signal-change events to an external event sink.
type EventPublisher interface {
	Publish(ctx context.Context, change models.SignalChange) error
	Close() error
}

// SignalStore holds the last-known signal per symbol, used only for
// transition detection. A symbol with no entry has never been observed.
type SignalStore interface {
	Get(ctx context.Context, symbol string) (models.Signal, bool, error)
	Set(ctx context.Context, symbol string, s models.Signal) error
}

type Metrics interface {
	RecordCycle(seconds float64)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordAlert(symbol string)
	RecordLatency(op string, seconds float64)
}
