package memory

import (
	"context"
	"sync"

	"creativerse-backend/domain/core/entities"
)

// PersonaRepository holds the persona directory and per-persona chat logs
type PersonaRepository struct {
	mu       sync.RWMutex
	personas map[string]*entities.Persona
	order    []string
	messages map[string][]entities.Message
}

// NewPersonaRepository creates a repository seeded with the given personas
func NewPersonaRepository(personas []*entities.Persona) *PersonaRepository {
	repo := &PersonaRepository{
		personas: make(map[string]*entities.Persona, len(personas)),
		order:    make([]string, 0, len(personas)),
		messages: make(map[string][]entities.Message),
	}
	for _, p := range personas {
		if _, exists := repo.personas[p.ID]; exists {
			continue
		}
		repo.personas[p.ID] = p
		repo.order = append(repo.order, p.ID)
	}
	return repo
}

// FindByID looks a persona up by id
func (r *PersonaRepository) FindByID(ctx context.Context, id string) (*entities.Persona, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persona, found := r.personas[id]
	return persona, found
}

// FindAll returns the persona directory in seed order
func (r *PersonaRepository) FindAll(ctx context.Context) []*entities.Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}

// AppendMessage adds a message to its persona's chat log
func (r *PersonaRepository) AppendMessage(ctx context.Context, msg entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[msg.PersonaID] = append(r.messages[msg.PersonaID], msg)
	return nil
}

// Messages returns a persona's chat log, oldest first
func (r *PersonaRepository) Messages(ctx context.Context, personaID string) []entities.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[personaID]
	out := make([]entities.Message, len(msgs))
	copy(out, msgs)
	return out
}
