package repository

import (
	"context"
	"testing"

	"CoinWatch/internal/domain/models"
)

func TestMemorySignalStoreAbsent(t *testing.T) {
	s := NewMemorySignalStore()
	_, ok, err := s.Get(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected no entry for unseen symbol")
	}
}

func TestMemorySignalStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySignalStore()
	if err := s.Set(ctx, "BTC", models.SignalSell); err != nil {
		t.Fatalf("set: %v", err)
	}
	sig, ok, err := s.Get(ctx, "BTC")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || sig != models.SignalSell {
		t.Fatalf("unexpected %v ok=%v", sig, ok)
	}

	// overwrite
	if err := s.Set(ctx, "BTC", models.SignalBuy); err != nil {
		t.Fatalf("set: %v", err)
	}
	sig, _, _ = s.Get(ctx, "BTC")
	if sig != models.SignalBuy {
		t.Fatalf("expected overwrite, got %v", sig)
	}
}
