package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
)

// RedisSignalStore keeps last-known signals in Redis so a restart does not
// re-suppress the first transition after it. Optional deployment backend.
type RedisSignalStore struct {
	cli    *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

func NewRedisSignalStore(cfg RedisConfig) *RedisSignalStore {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &RedisSignalStore{cli: rdb, prefix: cfg.KeyPrefix}
}

func (s *RedisSignalStore) Get(ctx context.Context, symbol string) (models.Signal, bool, error) {
	v, err := s.cli.Get(ctx, s.prefix+symbol).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", symbol, err)
	}
	sig := models.Signal(v)
	if !sig.Valid() {
		// stale or foreign value; treat as never observed
		return "", false, nil
	}
	return sig, true, nil
}

func (s *RedisSignalStore) Set(ctx context.Context, symbol string, sig models.Signal) error {
	if err := s.cli.Set(ctx, s.prefix+symbol, string(sig), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", symbol, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisSignalStore) Close() error {
	return s.cli.Close()
}

var _ drepo.SignalStore = (*RedisSignalStore)(nil)
