package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/domain/core/entities"
	pkgerrors "creativerse-backend/pkg/errors"
)

// PersonaService serves the AI persona directory and templated chat.
// Replies are canned strings: a keyword match against the persona's reply
// table wins, otherwise the fallback responses rotate deterministically
// with the length of the conversation.
type PersonaService struct {
	repo   ports.PersonaRepository
	logger *zap.Logger
}

// NewPersonaService creates a persona service
func NewPersonaService(repo ports.PersonaRepository, logger *zap.Logger) *PersonaService {
	return &PersonaService{repo: repo, logger: logger}
}

// Personas returns the persona directory
func (s *PersonaService) Personas(ctx context.Context) []*entities.Persona {
	return s.repo.FindAll(ctx)
}

// PersonaByID returns one persona or a NotFoundError
func (s *PersonaService) PersonaByID(ctx context.Context, id string) (*entities.Persona, error) {
	persona, found := s.repo.FindByID(ctx, id)
	if !found {
		return nil, pkgerrors.NewNotFoundError("persona")
	}
	return persona, nil
}

// Messages returns the chat log for a persona, oldest first. An unknown
// persona is a NotFoundError; an empty log starts with the greeting.
func (s *PersonaService) Messages(ctx context.Context, personaID string) ([]entities.Message, error) {
	persona, found := s.repo.FindByID(ctx, personaID)
	if !found {
		return nil, pkgerrors.NewNotFoundError("persona")
	}

	msgs := s.repo.Messages(ctx, personaID)
	if len(msgs) == 0 && persona.Greeting != "" {
		greeting := entities.Message{
			ID:        uuid.New().String(),
			PersonaID: personaID,
			Role:      entities.MessageRolePersona,
			Content:   persona.Greeting,
			CreatedAt: time.Now(),
		}
		if err := s.repo.AppendMessage(ctx, greeting); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to record greeting")
		}
		msgs = append(msgs, greeting)
	}

	return msgs, nil
}

// Post appends a user message and the persona's templated reply, returning
// both in order
func (s *PersonaService) Post(ctx context.Context, personaID, content string) ([]entities.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, pkgerrors.NewValidationError("message content cannot be empty")
	}

	persona, found := s.repo.FindByID(ctx, personaID)
	if !found {
		return nil, pkgerrors.NewNotFoundError("persona")
	}

	now := time.Now()
	userMsg := entities.Message{
		ID:        uuid.New().String(),
		PersonaID: personaID,
		Role:      entities.MessageRoleUser,
		Content:   content,
		CreatedAt: now,
	}
	if err := s.repo.AppendMessage(ctx, userMsg); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to record message")
	}

	reply := entities.Message{
		ID:        uuid.New().String(),
		PersonaID: personaID,
		Role:      entities.MessageRolePersona,
		Content:   s.composeReply(ctx, persona, content),
		CreatedAt: now,
	}
	if err := s.repo.AppendMessage(ctx, reply); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to record reply")
	}

	return []entities.Message{userMsg, reply}, nil
}

// composeReply picks the canned reply for a user message
func (s *PersonaService) composeReply(ctx context.Context, persona *entities.Persona, content string) string {
	lowered := strings.ToLower(content)
	// Keywords are checked in sorted order so a message matching several
	// of them always gets the same reply
	keywords := make([]string, 0, len(persona.KeywordReplies))
	for keyword := range persona.KeywordReplies {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return persona.KeywordReplies[keyword]
		}
	}

	if len(persona.Responses) == 0 {
		return persona.Greeting
	}

	// Rotate through the fallbacks with the conversation length so the
	// same question twice in a row gets a different answer
	count := len(s.repo.Messages(ctx, persona.ID))
	return persona.Responses[count%len(persona.Responses)]
}
