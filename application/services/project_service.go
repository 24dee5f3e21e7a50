package services

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectService orchestrates project CRUD and cascading soft deletes
type ProjectService struct {
	projects  ports.ProjectStore
	apps      ports.ApplicationStore
	pipelines ports.PipelineStore
	logger    *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projects ports.ProjectStore,
	apps ports.ApplicationStore,
	pipelines ports.PipelineStore,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		apps:      apps,
		pipelines: pipelines,
		logger:    logger,
	}
}

// CreateProject persists a new project, generating an id when absent
func (s *ProjectService) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = "ACTIVE"
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject retrieves a live project
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	return s.projects.GetProject(ctx, projectID)
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(ctx context.Context, patch *ports.ProjectPatch) error {
	return s.projects.UpdateProject(ctx, patch)
}

// DeleteProject soft-deletes a project and cascades the soft delete over its
// applications and pipelines. The cascade is sequential and best effort; a
// failure part way leaves already-deleted children hidden and a retry picks
// up the rest.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if _, err := s.projects.GetProject(ctx, projectID); err != nil {
		return err
	}

	if err := s.apps.DeleteProjectApplications(ctx, projectID); err != nil {
		return err
	}
	if err := s.pipelines.DeleteProjectPipelines(ctx, projectID); err != nil {
		return err
	}
	if err := s.projects.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("Project deleted with cascade", zap.String("projectID", projectID))
	return nil
}

// ListProjects returns one page of live projects
func (s *ProjectService) ListProjects(ctx context.Context, params common.PaginationParams) ([]*model.Project, int, error) {
	return s.projects.ListProjects(ctx, params)
}
