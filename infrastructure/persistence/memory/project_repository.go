// Package memory provides the in-memory repositories backing the
// workspace. Collections live in maps guarded by RWMutex; process restart
// discards everything that was not snapshotted.
package memory

import (
	"context"
	"sort"
	"sync"

	"creativerse-backend/domain/core/entities"
)

// ProjectRepository is the in-memory project collection
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*entities.Project
}

// NewProjectRepository creates an empty project repository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[string]*entities.Project),
	}
}

// Save inserts or replaces a project
func (r *ProjectRepository) Save(ctx context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects[project.ID.String()] = project
	return nil
}

// FindByID looks a project up by id
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entities.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, found := r.projects[id]
	return project, found
}

// FindAll returns all projects ordered by creation time, oldest first
func (r *ProjectRepository) FindAll(ctx context.Context) []*entities.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes a project; missing ids are a no-op
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.projects, id)
	return nil
}
