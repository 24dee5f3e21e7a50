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

// PluginService is the application surface the plugin handler drives
type PluginService interface {
	CreatePlugin(ctx context.Context, plugin *model.Plugin) (*model.Plugin, error)
	GetPlugin(ctx context.Context, pluginID string) (*model.Plugin, error)
	UpdatePlugin(ctx context.Context, patch *ports.PluginPatch) error
	DeletePlugin(ctx context.Context, pluginID string) error
	ListPlugins(ctx context.Context, pluginType string, params common.PaginationParams) ([]*model.Plugin, int, error)
}

// PluginHandler handles plugin-related HTTP requests
type PluginHandler struct {
	service PluginService
	logger  *zap.Logger
}

// NewPluginHandler creates a new plugin handler
func NewPluginHandler(service PluginService, logger *zap.Logger) *PluginHandler {
	return &PluginHandler{service: service, logger: logger}
}

// CreatePluginRequest represents the request body for registering a plugin
type CreatePluginRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Description     string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	PluginType      string   `json:"pluginType" validate:"required,oneof=Transform Enrich"`
	MainFunction    string   `json:"mainFunction" validate:"required,max=512"`
	JarFile         string   `json:"jarFile" validate:"required,max=1024"`
	DependencyFiles []string `json:"dependencyFiles,omitempty" validate:"omitempty,max=50,dive,max=1024"`
}

// UpdatePluginRequest represents the request body for updating a plugin
type UpdatePluginRequest struct {
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	MainFunction    *string   `json:"mainFunction,omitempty" validate:"omitempty,max=512"`
	JarFile         *string   `json:"jarFile,omitempty" validate:"omitempty,max=1024"`
	DependencyFiles *[]string `json:"dependencyFiles,omitempty" validate:"omitempty,max=50,dive,max=1024"`
}

// CreatePlugin handles POST /plugins
func (h *PluginHandler) CreatePlugin(w http.ResponseWriter, r *http.Request) {
	var req CreatePluginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	plugin := &model.Plugin{
		Name:            req.Name,
		Description:     req.Description,
		PluginType:      req.PluginType,
		MainFunction:    req.MainFunction,
		JarFile:         req.JarFile,
		DependencyFiles: req.DependencyFiles,
	}

	created, err := h.service.CreatePlugin(r.Context(), plugin)
	if err != nil {
		h.logger.Error("Failed to create plugin", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, created, "Plugin created")
}

// GetPlugin handles GET /plugins/{pluginID}
func (h *PluginHandler) GetPlugin(w http.ResponseWriter, r *http.Request) {
	pluginID := chi.URLParam(r, "pluginID")

	plugin, err := h.service.GetPlugin(r.Context(), pluginID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, plugin)
}

// UpdatePlugin handles PUT /plugins/{pluginID}
func (h *PluginHandler) UpdatePlugin(w http.ResponseWriter, r *http.Request) {
	pluginID := chi.URLParam(r, "pluginID")

	var req UpdatePluginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	patch := &ports.PluginPatch{
		PluginID:        pluginID,
		Description:     req.Description,
		MainFunction:    req.MainFunction,
		JarFile:         req.JarFile,
		DependencyFiles: req.DependencyFiles,
	}

	if err := h.service.UpdatePlugin(r.Context(), patch); err != nil {
		h.logger.Error("Failed to update plugin",
			zap.String("pluginID", pluginID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Plugin updated")
}

// DeletePlugin handles DELETE /plugins/{pluginID}
func (h *PluginHandler) DeletePlugin(w http.ResponseWriter, r *http.Request) {
	pluginID := chi.URLParam(r, "pluginID")

	if err := h.service.DeletePlugin(r.Context(), pluginID); err != nil {
		h.logger.Error("Failed to delete plugin",
			zap.String("pluginID", pluginID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, nil, "Plugin deleted")
}

// ListPlugins handles GET /plugins
func (h *PluginHandler) ListPlugins(w http.ResponseWriter, r *http.Request) {
	pluginType := r.URL.Query().Get("type")
	params := common.ExtractPaginationParams(r)

	plugins, total, err := h.service.ListPlugins(r.Context(), pluginType, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.PaginatedResult{
		TotalCount: total,
		Items:      plugins,
	})
}
