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

// ApplicationService is the application surface the app handler drives
type ApplicationService interface {
	CreateApplication(ctx context.Context, app *model.Application) (*model.Application, error)
	GetApplication(ctx context.Context, projectID, appID string) (*model.Application, error)
	DeleteApplication(ctx context.Context, projectID, appID string) error
	ListApplications(ctx context.Context, projectID string, params common.PaginationParams) ([]*model.Application, int, error)
}

// ApplicationHandler handles application-related HTTP requests
type ApplicationHandler struct {
	service ApplicationService
	logger  *zap.Logger
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(service ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, logger: logger}
}

// CreateApplicationRequest represents the request body for registering an app
type CreateApplicationRequest struct {
	AppID          string `json:"appId" validate:"required,min=1,max=128"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=1000"`
	AndroidPackage string `json:"androidPackage,omitempty" validate:"omitempty,max=256"`
	IOSBundleID    string `json:"iosBundleId,omitempty" validate:"omitempty,max=256"`
	IOSAppStoreID  string `json:"iosAppStoreId,omitempty" validate:"omitempty,max=64"`
}

// CreateApplication handles POST /projects/{projectID}/applications
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req CreateApplicationRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	app := &model.Application{
		ProjectID:      projectID,
		AppID:          req.AppID,
		Name:           req.Name,
		Description:    req.Description,
		AndroidPackage: req.AndroidPackage,
		IOSBundleID:    req.IOSBundleID,
		IOSAppStoreID:  req.IOSAppStoreID,
	}

	created, err := h.service.CreateApplication(r.Context(), app)
	if err != nil {
		h.logger.Error("Failed to create application",
			zap.String("projectID", projectID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, created, "Application created")
}

// GetApplication handles GET /projects/{projectID}/applications/{appID}
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	appID := chi.URLParam(r, "appID")

	app, err := h.service.GetApplication(r.Context(), projectID, appID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, app)
}

// DeleteApplication handles DELETE /projects/{projectID}/applications/{appID}
func (h *ApplicationHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	appID := chi.URLParam(r, "appID")

	if err := h.service.DeleteApplication(r.Context(), projectID, appID); err != nil {
		h.logger.Error("Failed to delete application",
			zap.String("projectID", projectID),
			zap.String("appID", appID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Application deleted")
}

// ListApplications handles GET /projects/{projectID}/applications
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	params := common.ExtractPaginationParams(r)

	apps, total, err := h.service.ListApplications(r.Context(), projectID, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.PaginatedResult{
		TotalCount: total,
		Items:      apps,
	})
}
