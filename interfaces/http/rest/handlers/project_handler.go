package handlers

import (
	"context"
	"net/http"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	"clickstream-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProjectService is the application surface the project handler drives
type ProjectService interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	UpdateProject(ctx context.Context, patch *ports.ProjectPatch) error
	DeleteProject(ctx context.Context, projectID string) error
	ListProjects(ctx context.Context, params common.PaginationParams) ([]*model.Project, int, error)
}

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	service ProjectService
	logger  *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, logger: logger}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	ID          string `json:"id,omitempty" validate:"omitempty,max=128"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Emails      string `json:"emails,omitempty" validate:"omitempty,max=1000"`
	Platform    string `json:"platform,omitempty" validate:"omitempty,max=64"`
	Region      string `json:"region,omitempty" validate:"omitempty,max=64"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Emails      *string `json:"emails,omitempty" validate:"omitempty,max=1000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE DISABLED"`
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	project := &model.Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Emails:      req.Emails,
		Platform:    req.Platform,
		Region:      req.Region,
	}

	created, err := h.service.CreateProject(r.Context(), project)
	if err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, created, "Project created")
}

// GetProject handles GET /projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Project ID is required")
		return
	}

	project, err := h.service.GetProject(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject handles PUT /projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Project ID is required")
		return
	}

	var req UpdateProjectRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	patch := &ports.ProjectPatch{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Emails:      req.Emails,
		Status:      req.Status,
	}

	if err := h.service.UpdateProject(r.Context(), patch); err != nil {
		h.logger.Error("Failed to update project",
			zap.String("projectID", projectID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Project updated")
}

// DeleteProject handles DELETE /projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Project ID is required")
		return
	}

	if err := h.service.DeleteProject(r.Context(), projectID); err != nil {
		h.logger.Error("Failed to delete project",
			zap.String("projectID", projectID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Project deleted")
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)

	projects, total, err := h.service.ListProjects(r.Context(), params)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.PaginatedResult{
		TotalCount: total,
		Items:      projects,
	})
}
