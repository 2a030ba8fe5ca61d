package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	domainconfig "creativerse-backend/domain/config"
	"creativerse-backend/infrastructure/config"
	"creativerse-backend/infrastructure/di"
	"creativerse-backend/infrastructure/persistence/memory"
	"creativerse-backend/interfaces/http/rest"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	restoreState(ctx, container)

	// Optional runtime limit overrides
	var watcher *config.Watcher
	if cfg.OverridesPath != "" {
		watcher, err = config.NewWatcher(cfg.OverridesPath, container.Logger)
		if err != nil {
			container.Logger.Warn("overrides unavailable", zap.Error(err))
		} else {
			applyLimits(container.DomainConfig, watcher.Limits())
			watcher.OnChange(func(l config.Limits) {
				applyLimits(container.DomainConfig, l)
			})
			watcher.Start()
			defer watcher.Stop()
		}
	}

	router := rest.NewRouter(container)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	log.Println("Server stopped")
}

// restoreState reloads the snapshotted slices and seeds the starter graph
// on a fresh database
func restoreState(ctx context.Context, container *di.Container) {
	logger := container.Logger

	if err := container.Universe.Restore(ctx); err != nil {
		logger.Warn("failed to restore universe nodes", zap.Error(err))
	}
	if err := container.Fusion.RestoreHistory(ctx); err != nil {
		logger.Warn("failed to restore fusion history", zap.Error(err))
	}
	if err := container.Notifications.Restore(ctx); err != nil {
		logger.Warn("failed to restore notifications", zap.Error(err))
	}

	if container.Config.SeedSampleData && len(container.Universe.Nodes(ctx)) == 0 {
		for _, node := range memory.SeedUniverseNodes() {
			if err := container.Universe.AddNode(ctx, node); err != nil {
				logger.Warn("failed to seed universe node", zap.Error(err))
			}
		}
		logger.Info("seeded starter universe graph")
	}
}

// applyLimits copies nonzero override values onto the live domain config
func applyLimits(dcfg *domainconfig.DomainConfig, l config.Limits) {
	dcfg.SetLimits(l.MaxConnectionsPerNode, l.MaxNodesPerUniverse, l.FusionHistoryCap, l.NotificationFeedCap)
}
