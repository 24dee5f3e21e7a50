package services

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"

	"go.uber.org/zap"
)

// ApplicationService orchestrates application CRUD under a project
type ApplicationService struct {
	apps     ports.ApplicationStore
	projects ports.ProjectStore
	logger   *zap.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(apps ports.ApplicationStore, projects ports.ProjectStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		projects: projects,
		logger:   logger,
	}
}

// CreateApplication registers an application under an existing project
func (s *ApplicationService) CreateApplication(ctx context.Context, app *model.Application) (*model.Application, error) {
	if _, err := s.projects.GetProject(ctx, app.ProjectID); err != nil {
		return nil, err
	}

	if err := s.apps.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// GetApplication retrieves a live application
func (s *ApplicationService) GetApplication(ctx context.Context, projectID, appID string) (*model.Application, error) {
	return s.apps.GetApplication(ctx, projectID, appID)
}

// DeleteApplication soft-deletes an application
func (s *ApplicationService) DeleteApplication(ctx context.Context, projectID, appID string) error {
	return s.apps.DeleteApplication(ctx, projectID, appID)
}

// ListApplications returns one page of a project's live applications
func (s *ApplicationService) ListApplications(ctx context.Context, projectID string, params common.PaginationParams) ([]*model.Application, int, error) {
	return s.apps.ListApplications(ctx, projectID, params)
}
