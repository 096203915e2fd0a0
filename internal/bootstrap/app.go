package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/skylens/photogenic-sky/internal/collector"
	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	"github.com/skylens/photogenic-sky/internal/infra/config"
)

// App ties the HTTP server and the refresh collector to one lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	collector *collector.Collector
	sensorSvc sensor.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, col *collector.Collector, sensorSvc sensor.Service) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.With("component", "bootstrap"),
		server:    server,
		collector: col,
		sensorSvc: sensorSvc,
	}
}

// Run starts everything and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.seedLocations(ctx)

	collectorCtx, stopCollector := context.WithCancel(ctx)
	defer stopCollector()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.collector.Run(collectorCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		stopCollector()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		wg.Wait()
		return nil
	case err := <-errCh:
		stopCollector()
		wg.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// seedLocations registers configured startup locations that are not
// persisted yet. Matching is by the original query string.
func (a *App) seedLocations(ctx context.Context) {
	if len(a.cfg.Locations.Seed) == 0 {
		return
	}
	existing, err := a.sensorSvc.ListLocations(ctx)
	if err != nil {
		a.logger.Error("seed: failed to list locations", "error", err)
		return
	}
	known := make(map[string]struct{}, len(existing))
	for _, loc := range existing {
		known[loc.Query] = struct{}{}
	}
	for _, query := range a.cfg.Locations.Seed {
		if _, ok := known[query]; ok {
			continue
		}
		loc, err := a.sensorSvc.AddLocation(ctx, query)
		if err != nil {
			a.logger.Error("seed: failed to register location", "query", query, "error", err)
			continue
		}
		a.logger.Info("seed: location registered", "query", query, "id", loc.ID)
	}
}
