package usecase

import (
	"sync"

	"CoinWatch/internal/domain/models"
)

// defaultAlertCapacity bounds the in-memory alert history.
const defaultAlertCapacity = 256

// SnapshotBoard owns the published presentation state: the current snapshot
// per asset, replaced wholesale at the end of every cycle, plus a bounded
// history of recent signal-change alerts. All access is guarded; readers
// (HTTP handlers, websocket broadcasts) never see a half-written cycle.
type SnapshotBoard struct {
	mu       sync.RWMutex
	order    []string // registry symbol order for stable rendering
	snaps    map[string]models.AssetSnapshot
	alerts   []models.SignalChange // newest first
	alertCap int
}

// NewSnapshotBoard creates a board that renders assets in registry order.
func NewSnapshotBoard(order []string) *SnapshotBoard {
	return &SnapshotBoard{
		order:    order,
		snaps:    make(map[string]models.AssetSnapshot),
		alertCap: defaultAlertCapacity,
	}
}

// Replace swaps the published snapshot mapping with next. Assets absent from
// next disappear from presentation until they succeed again.
func (b *SnapshotBoard) Replace(next map[string]models.AssetSnapshot) {
	b.mu.Lock()
	b.snaps = next
	b.mu.Unlock()
}

// All returns the current snapshots in registry order.
func (b *SnapshotBoard) All() []models.AssetSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.AssetSnapshot, 0, len(b.snaps))
	for _, sym := range b.order {
		if s, ok := b.snaps[sym]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the snapshot for one symbol, if present this cycle.
func (b *SnapshotBoard) Get(symbol string) (models.AssetSnapshot, bool) {
	b.mu.RLock()
	s, ok := b.snaps[symbol]
	b.mu.RUnlock()
	return s, ok
}

// AddAlert prepends a signal-change event to the history, evicting the
// oldest entry once the cap is reached.
func (b *SnapshotBoard) AddAlert(change models.SignalChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append([]models.SignalChange{change}, b.alerts...)
	if len(b.alerts) > b.alertCap {
		b.alerts = b.alerts[:b.alertCap]
	}
}

// Alerts returns up to limit recent alerts, newest first.
func (b *SnapshotBoard) Alerts(limit int) []models.SignalChange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if limit <= 0 || limit > len(b.alerts) {
		limit = len(b.alerts)
	}
	out := make([]models.SignalChange, limit)
	copy(out, b.alerts[:limit])
	return out
}
