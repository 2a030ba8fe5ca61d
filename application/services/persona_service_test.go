package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creativerse-backend/domain/core/entities"
	"creativerse-backend/infrastructure/persistence/memory"
	pkgerrors "creativerse-backend/pkg/errors"
)

func newTestPersonaService(t *testing.T) *PersonaService {
	t.Helper()
	personas := []*entities.Persona{
		{
			ID:        "muse",
			Name:      "Muse",
			Role:      "Creative Director",
			Greeting:  "Hello! What are we making today?",
			Responses: []string{"Tell me more.", "Interesting. Keep going.", "What if you inverted it?"},
			KeywordReplies: map[string]string{
				"stuck": "Step away for ten minutes, then delete your favorite part.",
			},
		},
		{ID: "mute", Name: "Mute", Role: "Archivist"},
	}
	return NewPersonaService(memory.NewPersonaRepository(personas), zap.NewNop())
}

func TestPersonaDirectory(t *testing.T) {
	svc := newTestPersonaService(t)
	ctx := context.Background()

	all := svc.Personas(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "muse", all[0].ID)

	persona, err := svc.PersonaByID(ctx, "muse")
	require.NoError(t, err)
	assert.Equal(t, "Muse", persona.Name)

	_, err = svc.PersonaByID(ctx, "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestMessagesSeedGreeting(t *testing.T) {
	svc := newTestPersonaService(t)
	ctx := context.Background()

	msgs, err := svc.Messages(ctx, "muse")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entities.MessageRolePersona, msgs[0].Role)
	assert.Equal(t, "Hello! What are we making today?", msgs[0].Content)

	// the greeting is recorded, not regenerated
	again, err := svc.Messages(ctx, "muse")
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, msgs[0].ID, again[0].ID)

	// a persona without a greeting starts empty
	empty, err := svc.Messages(ctx, "mute")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Messages(ctx, "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestPostAppendsUserAndReply(t *testing.T) {
	svc := newTestPersonaService(t)
	ctx := context.Background()

	pair, err := svc.Post(ctx, "muse", "I have an idea for a short film")
	require.NoError(t, err)
	require.Len(t, pair, 2)
	assert.Equal(t, entities.MessageRoleUser, pair[0].Role)
	assert.Equal(t, entities.MessageRolePersona, pair[1].Role)
	assert.NotEmpty(t, pair[1].Content)

	msgs, err := svc.Messages(ctx, "muse")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestPostKeywordReply(t *testing.T) {
	svc := newTestPersonaService(t)
	ctx := context.Background()

	pair, err := svc.Post(ctx, "muse", "I'm completely STUCK on this scene")
	require.NoError(t, err)
	assert.Equal(t, "Step away for ten minutes, then delete your favorite part.", pair[1].Content)
}

func TestPostKeywordReplyDeterministic(t *testing.T) {
	personas := []*entities.Persona{
		{
			ID:   "muse",
			Name: "Muse",
			KeywordReplies: map[string]string{
				"stuck": "Step away for ten minutes.",
				"block": "Swap mediums for an hour.",
			},
		},
	}
	svc := NewPersonaService(memory.NewPersonaRepository(personas), zap.NewNop())
	ctx := context.Background()

	// a message matching several keywords always gets the reply for the
	// first keyword in sorted order
	for i := 0; i < 10; i++ {
		pair, err := svc.Post(ctx, "muse", "total block, I'm stuck")
		require.NoError(t, err)
		assert.Equal(t, "Swap mediums for an hour.", pair[1].Content)
	}
}

func TestPostValidation(t *testing.T) {
	svc := newTestPersonaService(t)
	ctx := context.Background()

	_, err := svc.Post(ctx, "muse", "   ")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = svc.Post(ctx, "ghost", "hello?")
	assert.True(t, pkgerrors.IsNotFound(err))
}
