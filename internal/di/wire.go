//go:build wireinject
// +build wireinject

package di

import (
	"CoinWatch/pkg/config"
	"CoinWatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideMarketData,
		ProvideNotifier,
		ProvideSignalStore,
		ProvideEventPublisher,

		// Domain state
		ProvideAssets,
		ProvideBoard,

		// Use cases and transport
		ProvidePoller,
		ProvideHub,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
