package di

import (
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/application/services"
	domainconfig "creativerse-backend/domain/config"
	"creativerse-backend/infrastructure/config"
	"creativerse-backend/infrastructure/persistence/memory"
	"creativerse-backend/infrastructure/persistence/sqlite"
	"creativerse-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig selects the graph limits for the current environment
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	if cfg.IsDevelopment() {
		return domainconfig.DevelopmentDomainConfig()
	}
	return domainconfig.DefaultDomainConfig()
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("creativerse")
}

// ProvideSnapshotStore opens the local snapshot database
func ProvideSnapshotStore(cfg *config.Config) (ports.SnapshotStore, error) {
	return sqlite.NewSnapshotStore(cfg.SnapshotPath)
}

// ProvideUniverseRepository creates the in-memory universe store
func ProvideUniverseRepository() ports.UniverseRepository {
	return memory.NewUniverseRepository()
}

// ProvideProjectRepository creates the in-memory project store
func ProvideProjectRepository() ports.ProjectRepository {
	return memory.NewProjectRepository()
}

// ProvideRealityDataRepository creates the catalog, seeded with the sample
// data unless seeding is disabled
func ProvideRealityDataRepository(cfg *config.Config) ports.RealityDataRepository {
	if !cfg.SeedSampleData {
		return memory.NewRealityDataRepository(nil)
	}
	return memory.NewRealityDataRepository(memory.SeedRealityData())
}

// ProvideFusionHistoryRepository creates the bounded fusion history store
func ProvideFusionHistoryRepository(dcfg *domainconfig.DomainConfig) ports.FusionHistoryRepository {
	return memory.NewFusionHistoryRepository(dcfg)
}

// ProvidePersonaRepository creates the persona directory
func ProvidePersonaRepository() ports.PersonaRepository {
	return memory.NewPersonaRepository(memory.SeedPersonas())
}

// ProvideNotificationService creates the notification feed
func ProvideNotificationService(
	snapshots ports.SnapshotStore,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.NotificationService {
	return services.NewNotificationService(snapshots, dcfg, logger)
}

// ProvideUniverseService creates the universe graph service
func ProvideUniverseService(
	repo ports.UniverseRepository,
	snapshots ports.SnapshotStore,
	notifier *services.NotificationService,
	metrics *observability.Collector,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.UniverseService {
	return services.NewUniverseService(repo, snapshots, notifier, metrics, dcfg, logger)
}

// ProvideFusionService creates the fusion pipeline service
func ProvideFusionService(
	catalog ports.RealityDataRepository,
	history ports.FusionHistoryRepository,
	universe *services.UniverseService,
	notifier *services.NotificationService,
	snapshots ports.SnapshotStore,
	metrics *observability.Collector,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.FusionService {
	return services.NewFusionService(catalog, history, universe, notifier, snapshots, metrics, dcfg, logger)
}

// ProvideProjectService creates the project service
func ProvideProjectService(
	repo ports.ProjectRepository,
	notifier *services.NotificationService,
	metrics *observability.Collector,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.ProjectService {
	return services.NewProjectService(repo, notifier, metrics, dcfg, logger)
}

// ProvidePersonaService creates the AI persona service
func ProvidePersonaService(repo ports.PersonaRepository, logger *zap.Logger) *services.PersonaService {
	return services.NewPersonaService(repo, logger)
}

// ProvideStatsService creates the workspace stats service
func ProvideStatsService(
	projects *services.ProjectService,
	universe *services.UniverseService,
	fusion *services.FusionService,
	notifier *services.NotificationService,
) *services.StatsService {
	return services.NewStatsService(projects, universe, fusion, notifier)
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.Snapshots != nil {
		if err := c.Snapshots.Close(); err != nil {
			return err
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}
