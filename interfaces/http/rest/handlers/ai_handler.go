package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativerse-backend/application/services"
	"creativerse-backend/pkg/utils"
)

// AIHandler handles persona directory and templated chat HTTP requests
type AIHandler struct {
	personas *services.PersonaService
	logger   *zap.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(personas *services.PersonaService, logger *zap.Logger) *AIHandler {
	return &AIHandler{personas: personas, logger: logger}
}

// PostMessageRequest represents the request body for sending a chat message
type PostMessageRequest struct {
	PersonaID string `json:"personaId" validate:"required"`
	Content   string `json:"content" validate:"required,min=1,max=4000"`
}

// ListPersonas handles GET /ai/personas
func (h *AIHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.personas.Personas(r.Context()))
}

// GetPersona handles GET /ai/personas/{personaID}
func (h *AIHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	persona, err := h.personas.PersonaByID(r.Context(), personaID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, persona)
}

// GetMessages handles GET /ai/messages/{personaID}
func (h *AIHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	messages, err := h.personas.Messages(r.Context(), personaID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// PostMessage handles POST /ai/messages
func (h *AIHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	messages, err := h.personas.Post(r.Context(), req.PersonaID, req.Content)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, messages)
}
