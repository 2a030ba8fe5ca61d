//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/application/services"
	domainconfig "creativerse-backend/domain/config"
	"creativerse-backend/infrastructure/config"
	"creativerse-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Metrics      *observability.Collector
	Snapshots    ports.SnapshotStore

	Projects      *services.ProjectService
	Universe      *services.UniverseService
	Fusion        *services.FusionService
	Personas      *services.PersonaService
	Stats         *services.StatsService
	Notifications *services.NotificationService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideSnapshotStore,
	ProvideUniverseRepository,
	ProvideProjectRepository,
	ProvideRealityDataRepository,
	ProvideFusionHistoryRepository,
	ProvidePersonaRepository,
	ProvideNotificationService,
	ProvideUniverseService,
	ProvideFusionService,
	ProvideProjectService,
	ProvidePersonaService,
	ProvideStatsService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
