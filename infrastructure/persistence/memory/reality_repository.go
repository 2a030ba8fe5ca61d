package memory

import (
	"context"
	"sync"

	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
)

// RealityDataRepository is the read-only reality-data catalog. Items are
// set once at construction; fusions never write back.
type RealityDataRepository struct {
	items map[string]entities.RealityData
	order []string
}

// NewRealityDataRepository creates a catalog from the given items
func NewRealityDataRepository(items []entities.RealityData) *RealityDataRepository {
	repo := &RealityDataRepository{
		items: make(map[string]entities.RealityData, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		if _, exists := repo.items[item.ID]; exists {
			continue
		}
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

// FindByID looks an item up by id
func (r *RealityDataRepository) FindByID(ctx context.Context, id string) (entities.RealityData, bool) {
	item, found := r.items[id]
	return item, found
}

// FindAll returns the catalog in seed order
func (r *RealityDataRepository) FindAll(ctx context.Context) []entities.RealityData {
	out := make([]entities.RealityData, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// FusionHistoryRepository keeps fusion results most-recent-first. The
// primary history is capped with oldest-first eviction; the recent
// shortlist holds the last few commits. The caps are read from the shared
// config on every write, so runtime overrides take effect immediately.
type FusionHistoryRepository struct {
	mu      sync.RWMutex
	cfg     *config.DomainConfig
	history []entities.FusionResult
}

// NewFusionHistoryRepository creates an empty history bounded by cfg
func NewFusionHistoryRepository(cfg *config.DomainConfig) *FusionHistoryRepository {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &FusionHistoryRepository{cfg: cfg}
}

// Append prepends a result and evicts beyond the history cap
func (r *FusionHistoryRepository) Append(ctx context.Context, result entities.FusionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append([]entities.FusionResult{result}, r.history...)
	if limit := r.cfg.FusionHistoryCap(); len(r.history) > limit {
		r.history = r.history[:limit]
	}
	return nil
}

// History returns all recorded fusions, most recent first
func (r *FusionHistoryRepository) History(ctx context.Context) []entities.FusionResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.FusionResult, len(r.history))
	copy(out, r.history)
	return out
}

// Recent returns the shortlist of the latest fusions
func (r *FusionHistoryRepository) Recent(ctx context.Context) []entities.FusionResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.cfg.RecentFusionsCap
	if n > len(r.history) {
		n = len(r.history)
	}
	out := make([]entities.FusionResult, n)
	copy(out, r.history[:n])
	return out
}

// Replace swaps the whole history, applying the cap
func (r *FusionHistoryRepository) Replace(ctx context.Context, history []entities.FusionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit := r.cfg.FusionHistoryCap(); len(history) > limit {
		history = history[:limit]
	}
	r.history = make([]entities.FusionResult, len(history))
	copy(r.history, history)
	return nil
}
