package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativerse-backend/application/services"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/domain/core/valueobjects"
	"creativerse-backend/pkg/utils"
)

// UniverseHandler handles universe graph HTTP requests
type UniverseHandler struct {
	universe *services.UniverseService
	logger   *zap.Logger
}

// NewUniverseHandler creates a new universe handler
func NewUniverseHandler(universe *services.UniverseService, logger *zap.Logger) *UniverseHandler {
	return &UniverseHandler{universe: universe, logger: logger}
}

// PositionPayload carries node coordinates in request bodies
type PositionPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CreateNodeRequest represents the request body for adding a node
type CreateNodeRequest struct {
	ID       string                 `json:"id,omitempty"`
	Type     string                 `json:"type" validate:"required,oneof=project fusion ai milestone"`
	Name     string                 `json:"name" validate:"required,min=1,max=200"`
	Position *PositionPayload       `json:"position,omitempty"`
	Scale    *float64               `json:"scale,omitempty" validate:"omitempty,gt=0"`
	Color    *string                `json:"color,omitempty"`
	Metadata *entities.NodeMetadata `json:"metadata,omitempty"`
}

// UpdateNodeRequest represents the request body for patching a node
type UpdateNodeRequest struct {
	Name     *string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Position *PositionPayload       `json:"position,omitempty"`
	Scale    *float64               `json:"scale,omitempty" validate:"omitempty,gt=0"`
	Color    *string                `json:"color,omitempty"`
	Metadata *entities.NodeMetadata `json:"metadata,omitempty"`
}

// ConnectionRequest represents the request body for connecting or
// disconnecting two nodes
type ConnectionRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// SelectNodeRequest represents the request body for selecting a node
type SelectNodeRequest struct {
	ID *string `json:"id"`
}

// ListNodes handles GET /universe/nodes
func (h *UniverseHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes := h.universe.Nodes(r.Context())
	snapshots := make([]entities.UniverseNodeSnapshot, 0, len(nodes))
	for _, node := range nodes {
		snapshots = append(snapshots, node.Snapshot())
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// GetNode handles GET /universe/nodes/{nodeID}
func (h *UniverseHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	node, err := h.universe.NodeByID(r.Context(), nodeID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, node.Snapshot())
}

// CreateNode handles POST /universe/nodes
func (h *UniverseHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	id := valueobjects.NewID()
	if req.ID != "" {
		parsed, err := valueobjects.ParseID(req.ID)
		if err != nil {
			respondBadRequest(w, "invalid node id")
			return
		}
		id = parsed
	}

	position := valueobjects.NewPosition(0, 0, 0)
	if req.Position != nil {
		position = valueobjects.NewPosition(req.Position.X, req.Position.Y, req.Position.Z)
	}
	scale := 1.0
	if req.Scale != nil {
		scale = *req.Scale
	}
	color := "#ffffff"
	if req.Color != nil {
		color = *req.Color
	}
	metadata := entities.NodeMetadata{}
	if req.Metadata != nil {
		metadata = *req.Metadata
	}

	node, err := entities.NewUniverseNode(id, entities.NodeType(req.Type), req.Name, position, scale, color, metadata)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	if err := h.universe.AddNode(r.Context(), node); err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, node.Snapshot())
}

// UpdateNode handles PATCH /universe/nodes/{nodeID}
func (h *UniverseHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	update := entities.NodeUpdate{
		Name:     req.Name,
		Scale:    req.Scale,
		Color:    req.Color,
		Metadata: req.Metadata,
	}
	if req.Position != nil {
		p := valueobjects.NewPosition(req.Position.X, req.Position.Y, req.Position.Z)
		update.Position = &p
	}

	node, err := h.universe.UpdateNode(r.Context(), nodeID, update)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, node.Snapshot())
}

// DeleteNode handles DELETE /universe/nodes/{nodeID}
func (h *UniverseHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	if err := h.universe.RemoveNode(r.Context(), nodeID); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFusionNodes handles GET /universe/fusion-nodes
func (h *UniverseHandler) ListFusionNodes(w http.ResponseWriter, r *http.Request) {
	nodes := h.universe.FusionNodes(r.Context())
	snapshots := make([]entities.UniverseNodeSnapshot, 0, len(nodes))
	for _, node := range nodes {
		snapshots = append(snapshots, node.Snapshot())
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// Connect handles POST /universe/connections
func (h *UniverseHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.universe.ConnectNodes(r.Context(), req.Source, req.Target); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"source": req.Source, "target": req.Target})
}

// Disconnect handles DELETE /universe/connections
func (h *UniverseHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	var req ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.universe.DisconnectNodes(r.Context(), req.Source, req.Target); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSelection handles GET /universe/selection
func (h *UniverseHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.universe.SelectedNodeID()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]interface{}{"id": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": id})
}

// SetSelection handles PUT /universe/selection. A null id clears the
// selection.
func (h *UniverseHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := h.universe.SelectNode(r.Context(), req.ID); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": req.ID})
}
