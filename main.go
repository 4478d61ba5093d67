// main.go
package main

import (
	"context"
	"log"
	"time"

	"salon-sync/cmd"
	"salon-sync/internal/connectivity"
	"salon-sync/internal/data/localstore"
	"salon-sync/internal/notify"
	"salon-sync/internal/remote"
	"salon-sync/internal/resolver"
	"salon-sync/internal/usecase"
	"salon-sync/internal/wire"
	"salon-sync/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Open the local booking store (SQLite, or the file fallback)
	store, err := localstore.Open(config.Store.Backend, config.Store.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer store.Close()

	logger.Info("Local store ready", zap.String("backend", config.Store.Backend))

	// Remote booking store client
	remoteClient, err := remote.NewClient(remote.Config{
		Backend:  config.Remote.Backend,
		BaseURL:  config.Remote.BaseURL,
		APIKey:   config.Remote.APIKey,
		Timeout:  config.Remote.Timeout,
		DSN:      config.Remote.DSN,
		MaxConns: config.Remote.MaxConns,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize remote client", zap.Error(err))
	}
	defer remoteClient.Close()

	// Provider alias table, notification client, connectivity gate
	res := resolver.New(config.Providers.Aliases)
	notifier := notify.NewHTTPNotifier(config.Notify.Endpoint, config.Notify.APIKey, config.Notify.Timeout, logger)
	gate := connectivity.NewHTTPGate(config.Connectivity.ProbeURL, config.Connectivity.Timeout, logger)

	// Wire all dependencies
	service := usecase.NewService(store, res, remoteClient, notifier, gate, logger)
	app := wire.Wiring(service, config, logger)

	// Background sync loop
	go runSyncLoop(service.Sync, config.Sync, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

// runSyncLoop triggers a sync pass on a fixed interval. The engine's own
// in-flight guard makes an overlap with an on-demand pass harmless.
func runSyncLoop(syncService usecase.SyncService, config utils.SyncConfig, logger *zap.Logger) {
	if config.RunOnBoot {
		if err := syncService.SyncPending(context.Background()); err != nil {
			logger.Error("Startup sync pass failed", zap.Error(err))
		}
	}

	if config.Interval <= 0 {
		logger.Info("Periodic sync disabled")
		return
	}

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := syncService.SyncPending(context.Background()); err != nil {
			logger.Error("Periodic sync pass failed", zap.Error(err))
		}
	}
}
