package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	drepo "CoinWatch/internal/domain/repository"
	"CoinWatch/internal/handler/api"
	"CoinWatch/internal/handler/ws"
	"CoinWatch/internal/usecase"
	"CoinWatch/pkg/config"
	xhttp "CoinWatch/pkg/http"
	applogger "CoinWatch/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	poller     *usecase.Poller
	hub        *ws.Hub
	handler    *api.Handler
	store      drepo.SignalStore
	events     drepo.EventPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	poller *usecase.Poller,
	hub *ws.Hub,
	handler *api.Handler,
	store drepo.SignalStore,
	events drepo.EventPublisher,
) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		poller:  poller,
		hub:     hub,
		handler: handler,
		store:   store,
		events:  events,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// every completed poll cycle is pushed to dashboard clients
	a.poller.SetCycleHook(a.hub.Broadcast)
	a.poller.Start(ctx)
	a.log.Info("poller started",
		applogger.Int("assets", len(a.cfg.Assets)),
		applogger.Duration("interval", a.cfg.Poll.Interval),
	)

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.poller.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("poller stop error", applogger.Error(err))
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.hub.Close()

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.log.Warn("event publisher close error", applogger.Error(err))
		}
	}
	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.log.Warn("signal store close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
