// Package ports defines the interfaces between the application layer and
// infrastructure. Services depend on these abstractions only; concrete
// implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"creativerse-backend/domain/core/entities"
)

// ProjectRepository owns the project collection
type ProjectRepository interface {
	Save(ctx context.Context, project *entities.Project) error
	FindByID(ctx context.Context, id string) (*entities.Project, bool)
	FindAll(ctx context.Context) []*entities.Project
	Delete(ctx context.Context, id string) error
}

// RealityDataRepository owns the read-only reality-data catalog
type RealityDataRepository interface {
	FindByID(ctx context.Context, id string) (entities.RealityData, bool)
	FindAll(ctx context.Context) []entities.RealityData
}

// FusionHistoryRepository owns the fusion result history.
// Append keeps most-recent-first order and evicts beyond the cap.
type FusionHistoryRepository interface {
	Append(ctx context.Context, result entities.FusionResult) error
	History(ctx context.Context) []entities.FusionResult
	Recent(ctx context.Context) []entities.FusionResult
	Replace(ctx context.Context, history []entities.FusionResult) error
}

// UniverseRepository owns the universe node collection
type UniverseRepository interface {
	Save(ctx context.Context, node *entities.UniverseNode) error
	FindByID(ctx context.Context, id string) (*entities.UniverseNode, bool)
	FindAll(ctx context.Context) []*entities.UniverseNode
	Delete(ctx context.Context, id string) error
}

// PersonaRepository owns the persona directory and per-persona chat logs
type PersonaRepository interface {
	FindByID(ctx context.Context, id string) (*entities.Persona, bool)
	FindAll(ctx context.Context) []*entities.Persona
	AppendMessage(ctx context.Context, msg entities.Message) error
	Messages(ctx context.Context, personaID string) []entities.Message
}

// SnapshotStore persists opaque JSON blobs under string keys. It backs the
// local storage slices (universe nodes, fusion history, notifications,
// settings); values carry no schema version.
type SnapshotStore interface {
	Put(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
