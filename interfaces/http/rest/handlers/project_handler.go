package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativerse-backend/application/services"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/pkg/utils"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projects *services.ProjectService
	logger   *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Type            string   `json:"type" validate:"required,oneof=video model audio code"`
	RelatedProjects []string `json:"relatedProjects,omitempty" validate:"omitempty,max=20"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Title           *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Type            *string   `json:"type,omitempty" validate:"omitempty,oneof=video model audio code"`
	RelatedProjects *[]string `json:"relatedProjects,omitempty" validate:"omitempty,max=20"`
}

// SelectProjectRequest represents the request body for selecting a project
type SelectProjectRequest struct {
	ID *string `json:"id"`
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.projects.List(r.Context()))
}

// GetProject handles GET /projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	project, err := h.projects.ByID(r.Context(), projectID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	project, err := h.projects.Create(r.Context(), req.Title, req.Description, entities.ProjectType(req.Type), req.RelatedProjects)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PUT /projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	update := services.ProjectUpdate{
		Title:           req.Title,
		Description:     req.Description,
		RelatedProjects: req.RelatedProjects,
	}
	if req.Type != nil {
		t := entities.ProjectType(*req.Type)
		update.Type = &t
	}

	project, err := h.projects.Update(r.Context(), projectID, update)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	if err := h.projects.Delete(r.Context(), projectID); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSelection handles GET /projects/selection
func (h *ProjectHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projects.SelectedProjectID()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]interface{}{"id": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": id})
}

// SetSelection handles PUT /projects/selection. A null id clears the
// selection.
func (h *ProjectHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := h.projects.Select(r.Context(), req.ID); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": req.ID})
}
