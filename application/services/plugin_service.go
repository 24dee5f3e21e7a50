package services

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PluginService orchestrates plugin CRUD. Stored plugins are mutable only
// while unbound; built-in plugins come from the dictionary catalog and are
// immutable.
type PluginService struct {
	plugins      ports.PluginStore
	dictionaries ports.DictionaryStore
	logger       *zap.Logger
}

// NewPluginService creates a new plugin service
func NewPluginService(plugins ports.PluginStore, dictionaries ports.DictionaryStore, logger *zap.Logger) *PluginService {
	return &PluginService{
		plugins:      plugins,
		dictionaries: dictionaries,
		logger:       logger,
	}
}

// CreatePlugin registers a new user plugin
func (s *PluginService) CreatePlugin(ctx context.Context, plugin *model.Plugin) (*model.Plugin, error) {
	if plugin.ID == "" {
		plugin.ID = uuid.New().String()
	}

	if err := s.plugins.CreatePlugin(ctx, plugin); err != nil {
		return nil, err
	}

	return plugin, nil
}

// GetPlugin retrieves a live stored plugin
func (s *PluginService) GetPlugin(ctx context.Context, pluginID string) (*model.Plugin, error) {
	return s.plugins.GetPlugin(ctx, pluginID)
}

// UpdatePlugin applies a partial update to an unbound stored plugin
func (s *PluginService) UpdatePlugin(ctx context.Context, patch *ports.PluginPatch) error {
	if err := s.rejectBuiltIn(ctx, patch.PluginID); err != nil {
		return err
	}

	if _, err := s.plugins.GetPlugin(ctx, patch.PluginID); err != nil {
		return err
	}

	return s.plugins.UpdatePlugin(ctx, patch)
}

// DeletePlugin soft-deletes an unbound stored plugin
func (s *PluginService) DeletePlugin(ctx context.Context, pluginID string) error {
	if err := s.rejectBuiltIn(ctx, pluginID); err != nil {
		return err
	}

	if _, err := s.plugins.GetPlugin(ctx, pluginID); err != nil {
		return err
	}

	return s.plugins.DeletePlugin(ctx, pluginID)
}

// ListPlugins returns one page of the merged built-in and stored catalog
func (s *PluginService) ListPlugins(ctx context.Context, pluginType string, params common.PaginationParams) ([]*model.Plugin, int, error) {
	return s.plugins.ListPlugins(ctx, pluginType, params)
}

// rejectBuiltIn fails mutations that target a built-in catalog entry
func (s *PluginService) rejectBuiltIn(ctx context.Context, pluginID string) error {
	dict, err := s.dictionaries.GetDictionary(ctx, model.DictionaryBuiltInPlugins)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	catalog, err := dict.BuiltInPlugins()
	if err != nil {
		return appErrors.Wrap(err, "failed to decode built-in plugin catalog")
	}

	for _, p := range catalog {
		if p.ID == pluginID {
			return appErrors.NewConflictError("built-in plugin cannot be modified or deleted")
		}
	}
	return nil
}
