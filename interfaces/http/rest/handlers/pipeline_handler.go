package handlers

import (
	"context"
	"net/http"

	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	"clickstream-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PipelineService is the application surface the pipeline handler drives
type PipelineService interface {
	CreatePipeline(ctx context.Context, pipeline *model.Pipeline) (*model.Pipeline, error)
	GetPipeline(ctx context.Context, projectID, pipelineID string) (*model.Pipeline, error)
	GetPipelineVersion(ctx context.Context, projectID, pipelineID, versionTag string) (*model.Pipeline, error)
	UpdatePipeline(ctx context.Context, updated *model.Pipeline) error
	DeletePipeline(ctx context.Context, projectID, pipelineID string) error
	ListPipelines(ctx context.Context, projectID, versionTag string, params common.PaginationParams) ([]*model.Pipeline, int, error)
}

// PipelineHandler handles pipeline-related HTTP requests
type PipelineHandler struct {
	service PipelineService
	logger  *zap.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(service PipelineService, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{service: service, logger: logger}
}

// PipelineRequest is the request body for creating or updating a pipeline.
// On update the version field must carry the version the caller last read;
// a stale version is rejected with 409.
type PipelineRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=200"`
	Description string                 `json:"description,omitempty" validate:"omitempty,max=1000"`
	Region      string                 `json:"region,omitempty" validate:"omitempty,max=64"`
	Version     string                 `json:"version,omitempty"`
	Network     model.NetworkConfig    `json:"network"`
	Bucket      model.BucketLocation   `json:"bucket"`
	Ingestion   *model.IngestionConfig `json:"ingestion,omitempty"`
	ETL         *model.ETLConfig       `json:"etl,omitempty"`
	Report      *model.ReportConfig    `json:"report,omitempty"`
}

func (req *PipelineRequest) toModel(projectID string) *model.Pipeline {
	return &model.Pipeline{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Region:      req.Region,
		Version:     req.Version,
		Network:     req.Network,
		Bucket:      req.Bucket,
		Ingestion:   req.Ingestion,
		ETL:         req.ETL,
		Report:      req.Report,
	}
}

// CreatePipeline handles POST /projects/{projectID}/pipelines
func (h *PipelineHandler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req PipelineRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	created, err := h.service.CreatePipeline(r.Context(), req.toModel(projectID))
	if err != nil {
		h.logger.Error("Failed to create pipeline",
			zap.String("projectID", projectID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, created, "Pipeline created")
}

// GetPipeline handles GET /projects/{projectID}/pipelines/{pipelineID}
func (h *PipelineHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	pipelineID := chi.URLParam(r, "pipelineID")

	pipeline, err := h.service.GetPipeline(r.Context(), projectID, pipelineID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, pipeline)
}

// GetPipelineVersion handles GET /projects/{projectID}/pipelines/{pipelineID}/versions/{version}
func (h *PipelineHandler) GetPipelineVersion(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	pipelineID := chi.URLParam(r, "pipelineID")
	version := chi.URLParam(r, "version")

	pipeline, err := h.service.GetPipelineVersion(r.Context(), projectID, pipelineID, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, pipeline)
}

// UpdatePipeline handles PUT /projects/{projectID}/pipelines/{pipelineID}
func (h *PipelineHandler) UpdatePipeline(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	pipelineID := chi.URLParam(r, "pipelineID")

	var req PipelineRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	updated := req.toModel(projectID)
	updated.PipelineID = pipelineID

	if err := h.service.UpdatePipeline(r.Context(), updated); err != nil {
		h.logger.Error("Failed to update pipeline",
			zap.String("projectID", projectID),
			zap.String("pipelineID", pipelineID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, updated, "Pipeline updated")
}

// DeletePipeline handles DELETE /projects/{projectID}/pipelines/{pipelineID}
func (h *PipelineHandler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	pipelineID := chi.URLParam(r, "pipelineID")

	if err := h.service.DeletePipeline(r.Context(), projectID, pipelineID); err != nil {
		h.logger.Error("Failed to delete pipeline",
			zap.String("projectID", projectID),
			zap.String("pipelineID", pipelineID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Pipeline deleted")
}

// ListPipelines handles GET /projects/{projectID}/pipelines
func (h *PipelineHandler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	versionTag := r.URL.Query().Get("version")
	params := common.ExtractPaginationParams(r)

	pipelines, total, err := h.service.ListPipelines(r.Context(), projectID, versionTag, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.PaginatedResult{
		TotalCount: total,
		Items:      pipelines,
	})
}
