package memory

import (
	"context"
	"sort"
	"sync"

	"creativerse-backend/domain/core/entities"
)

// UniverseRepository is the in-memory universe node collection
type UniverseRepository struct {
	mu    sync.RWMutex
	nodes map[string]*entities.UniverseNode
}

// NewUniverseRepository creates an empty universe repository
func NewUniverseRepository() *UniverseRepository {
	return &UniverseRepository{
		nodes: make(map[string]*entities.UniverseNode),
	}
}

// Save inserts or replaces a node
func (r *UniverseRepository) Save(ctx context.Context, node *entities.UniverseNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nodes[node.ID().String()] = node
	return nil
}

// FindByID looks a node up by id
func (r *UniverseRepository) FindByID(ctx context.Context, id string) (*entities.UniverseNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, found := r.nodes[id]
	return node, found
}

// FindAll returns all nodes ordered by creation time, oldest first
func (r *UniverseRepository) FindAll(ctx context.Context) []*entities.UniverseNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.UniverseNode, 0, len(r.nodes))
	for _, node := range r.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateCreated().Equal(out[j].DateCreated()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].DateCreated().Before(out[j].DateCreated())
	})
	return out
}

// Delete removes a node; missing ids are a no-op
func (r *UniverseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.nodes, id)
	return nil
}
