package usecase

import (
	"fmt"
	"testing"
	"time"

	"CoinWatch/internal/domain/models"
)

func snapFor(symbol string, price float64) models.AssetSnapshot {
	return models.AssetSnapshot{
		Symbol:       symbol,
		CurrentPrice: price,
		Signal:       models.SignalHold,
		SignalLabel:  models.SignalHold.Label(),
		UpdatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBoardAllFollowsRegistryOrder(t *testing.T) {
	board := NewSnapshotBoard([]string{"BTC", "ETH", "SOL"})
	board.Replace(map[string]models.AssetSnapshot{
		"SOL": snapFor("SOL", 150),
		"BTC": snapFor("BTC", 60000),
	})

	all := board.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(all))
	}
	if all[0].Symbol != "BTC" || all[1].Symbol != "SOL" {
		t.Fatalf("registry order not preserved: %v, %v", all[0].Symbol, all[1].Symbol)
	}
}

func TestBoardReplaceDropsStale(t *testing.T) {
	board := NewSnapshotBoard([]string{"BTC", "ETH"})
	board.Replace(map[string]models.AssetSnapshot{
		"BTC": snapFor("BTC", 60000),
		"ETH": snapFor("ETH", 3000),
	})
	board.Replace(map[string]models.AssetSnapshot{
		"ETH": snapFor("ETH", 3100),
	})

	if _, ok := board.Get("BTC"); ok {
		t.Fatal("BTC should be gone after replace")
	}
	snap, ok := board.Get("ETH")
	if !ok || snap.CurrentPrice != 3100 {
		t.Fatalf("ETH snapshot stale: %+v ok=%v", snap, ok)
	}
}

func TestBoardGetMissing(t *testing.T) {
	board := NewSnapshotBoard([]string{"BTC"})
	if _, ok := board.Get("DOGE"); ok {
		t.Fatal("expected miss for unknown symbol")
	}
}

func TestBoardAlertsNewestFirst(t *testing.T) {
	board := NewSnapshotBoard(nil)
	for i := 0; i < 3; i++ {
		board.AddAlert(models.SignalChange{
			Symbol: fmt.Sprintf("A%d", i),
			From:   models.SignalHold,
			To:     models.SignalBuy,
		})
	}

	alerts := board.Alerts(10)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	if alerts[0].Symbol != "A2" || alerts[2].Symbol != "A0" {
		t.Fatalf("alerts not newest-first: %+v", alerts)
	}
}

func TestBoardAlertsLimitAndCap(t *testing.T) {
	board := NewSnapshotBoard(nil)
	for i := 0; i < defaultAlertCapacity+10; i++ {
		board.AddAlert(models.SignalChange{Symbol: fmt.Sprintf("A%d", i)})
	}

	if got := len(board.Alerts(defaultAlertCapacity * 2)); got != defaultAlertCapacity {
		t.Fatalf("ring not capped: got %d", got)
	}
	limited := board.Alerts(5)
	if len(limited) != 5 {
		t.Fatalf("limit not applied: got %d", len(limited))
	}
	if limited[0].Symbol != fmt.Sprintf("A%d", defaultAlertCapacity+9) {
		t.Fatalf("newest alert missing after eviction: %v", limited[0].Symbol)
	}
}
