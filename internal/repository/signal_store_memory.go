package repository

import (
	"context"
	"sync"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
)

// MemorySignalStore keeps last-known signals for the lifetime of the
// process. This is the default backend.
type MemorySignalStore struct {
	mu sync.RWMutex
	m  map[string]models.Signal
}

func NewMemorySignalStore() *MemorySignalStore {
	return &MemorySignalStore{m: make(map[string]models.Signal)}
}

func (s *MemorySignalStore) Get(_ context.Context, symbol string) (models.Signal, bool, error) {
	s.mu.RLock()
	sig, ok := s.m[symbol]
	s.mu.RUnlock()
	return sig, ok, nil
}

func (s *MemorySignalStore) Set(_ context.Context, symbol string, sig models.Signal) error {
	s.mu.Lock()
	s.m[symbol] = sig
	s.mu.Unlock()
	return nil
}

var _ drepo.SignalStore = (*MemorySignalStore)(nil)
