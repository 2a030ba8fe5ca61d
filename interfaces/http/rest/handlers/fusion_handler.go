package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativerse-backend/application/services"
	"creativerse-backend/pkg/utils"
)

// FusionHandler handles reality-data and fusion HTTP requests
type FusionHandler struct {
	fusion *services.FusionService
	logger *zap.Logger
}

// NewFusionHandler creates a new fusion handler
func NewFusionHandler(fusion *services.FusionService, logger *zap.Logger) *FusionHandler {
	return &FusionHandler{fusion: fusion, logger: logger}
}

// SelectItemRequest represents the request body for selecting a catalog item
type SelectItemRequest struct {
	ID string `json:"id" validate:"required"`
}

// PerformFusionRequest represents the request body for committing a fusion
type PerformFusionRequest struct {
	SourceIDs   []string `json:"sourceIds" validate:"required,min=2,dive,required"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ListCatalog handles GET /reality-data
func (h *FusionHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.fusion.Catalog(r.Context()))
}

// GetCatalogItem handles GET /reality-data/{dataID}
func (h *FusionHandler) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	dataID := chi.URLParam(r, "dataID")

	item, err := h.fusion.DataByID(r.Context(), dataID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// GetSelection handles GET /fusion/selection
func (h *FusionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.fusion.Selection())
}

// SelectItem handles POST /fusion/selection
func (h *FusionHandler) SelectItem(w http.ResponseWriter, r *http.Request) {
	var req SelectItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.fusion.SelectItem(r.Context(), req.ID); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.fusion.Selection())
}

// DeselectItem handles DELETE /fusion/selection/{dataID}
func (h *FusionHandler) DeselectItem(w http.ResponseWriter, r *http.Request) {
	dataID := chi.URLParam(r, "dataID")
	h.fusion.DeselectItem(dataID)
	respondJSON(w, http.StatusOK, h.fusion.Selection())
}

// ClearSelection handles DELETE /fusion/selection
func (h *FusionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.fusion.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// GetCompatibility handles GET /fusion/compatibility
func (h *FusionHandler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"score":     h.fusion.CompatibilityPreview(r.Context()),
		"selection": h.fusion.Selection(),
	})
}

// PerformFusion handles POST /fusion
func (h *FusionHandler) PerformFusion(w http.ResponseWriter, r *http.Request) {
	var req PerformFusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	result, err := h.fusion.PerformFusion(r.Context(), req.SourceIDs, req.Name, req.Description)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// GetHistory handles GET /fusion/history
func (h *FusionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.fusion.History(r.Context()))
}

// GetRecent handles GET /fusion/recent
func (h *FusionHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.fusion.Recent(r.Context()))
}
