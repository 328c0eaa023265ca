package di

import (
	"fmt"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	"CoinWatch/internal/handler/api"
	"CoinWatch/internal/handler/ws"
	internalrepo "CoinWatch/internal/repository"
	"CoinWatch/internal/service/coingecko"
	"CoinWatch/internal/service/telegram"
	"CoinWatch/internal/usecase"
	"CoinWatch/pkg/config"
	pkgkafka "CoinWatch/pkg/kafka"
	"CoinWatch/pkg/logger"
	"CoinWatch/pkg/metrics"
	"CoinWatch/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the CoinGecko market-chart client.
func ProvideMarketData(cfg *config.Config) drepo.MarketData {
	return coingecko.New(
		cfg.Provider.BaseURL,
		cfg.Provider.VsCurrency,
		cfg.Provider.LookbackDays,
		cfg.Provider.Granularity,
		cfg.Provider.Timeout,
	)
}

// ProvideNotifier creates the Telegram notifier, or nil when alerting
// is disabled.
func ProvideNotifier(cfg *config.Config) drepo.Notifier {
	if !cfg.Telegram.Enabled {
		return nil
	}
	return telegram.New(
		cfg.Telegram.BaseURL,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.Timeout,
	)
}

// ProvideSignalStore creates the per-asset signal memory backend.
func ProvideSignalStore(cfg *config.Config) (drepo.SignalStore, error) {
	switch cfg.SignalStore.Backend {
	case "redis":
		return internalrepo.NewRedisSignalStore(internalrepo.RedisConfig{
			Addr:      cfg.SignalStore.Redis.Addr,
			Password:  cfg.SignalStore.Redis.Password,
			DB:        cfg.SignalStore.Redis.DB,
			KeyPrefix: cfg.SignalStore.Redis.KeyPrefix,
		}), nil
	case "memory":
		return internalrepo.NewMemorySignalStore(), nil
	default:
		return nil, fmt.Errorf("unknown signal store backend %q", cfg.SignalStore.Backend)
	}
}

// ProvideEventPublisher creates the Kafka signal-change mirror, or nil
// when no brokers are configured.
func ProvideEventPublisher(cfg *config.Config) (drepo.EventPublisher, error) {
	if len(cfg.Events.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.ReadTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Events.Topic), nil
}

// ProvideAssets converts the configured registry into domain assets.
func ProvideAssets(cfg *config.Config) []models.Asset {
	assets := make([]models.Asset, 0, len(cfg.Assets))
	for _, entry := range cfg.Assets {
		assets = append(assets, models.Asset{ID: entry.ID, Symbol: entry.Symbol})
	}
	return assets
}

// ProvideBoard creates the snapshot board ordered like the registry.
func ProvideBoard(assets []models.Asset) *usecase.SnapshotBoard {
	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.Symbol)
	}
	return usecase.NewSnapshotBoard(symbols)
}

// ProvidePoller creates the poll orchestrator.
func ProvidePoller(
	cfg *config.Config,
	assets []models.Asset,
	market drepo.MarketData,
	notifier drepo.Notifier,
	events drepo.EventPublisher,
	store drepo.SignalStore,
	m drepo.Metrics,
	board *usecase.SnapshotBoard,
	log *logger.Logger,
) *usecase.Poller {
	return usecase.NewPoller(assets, market, notifier, events, store, m, board, cfg.Poll.Interval, log)
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(log *logger.Logger) *ws.Hub {
	return ws.NewHub(log)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(board *usecase.SnapshotBoard, hub *ws.Hub, log *logger.Logger) *api.Handler {
	return api.NewHandler(board, hub, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	poller *usecase.Poller,
	hub *ws.Hub,
	handler *api.Handler,
	store drepo.SignalStore,
	events drepo.EventPublisher,
) *server.App {
	return server.New(cfg, log, poller, hub, handler, store, events)
}
