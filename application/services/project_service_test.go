package services

import (
	"context"
	"testing"

	"clickstream-backend/domain/model"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProject_AssignsIDAndStatus(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	pipelines := new(MockPipelineStore)
	service := NewProjectService(projects, apps, pipelines, zap.NewNop())

	projects.On("CreateProject", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	created, err := service.CreateProject(context.Background(), &model.Project{Name: "web shop"})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ACTIVE", created.Status)
	projects.AssertExpectations(t)
}

func TestCreateProject_DuplicateConflict(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	pipelines := new(MockPipelineStore)
	service := NewProjectService(projects, apps, pipelines, zap.NewNop())

	projects.On("CreateProject", mock.Anything, mock.Anything).
		Return(appErrors.NewConflictError("project already exists"))

	_, err := service.CreateProject(context.Background(), &model.Project{ID: "project-1"})

	require.Error(t, err)
	assert.True(t, appErrors.IsConflict(err))
}

func TestDeleteProject_CascadesToChildren(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	pipelines := new(MockPipelineStore)
	service := NewProjectService(projects, apps, pipelines, zap.NewNop())

	projects.On("GetProject", mock.Anything, "project-1").
		Return(&model.Project{ID: "project-1"}, nil)
	apps.On("DeleteProjectApplications", mock.Anything, "project-1").Return(nil)
	pipelines.On("DeleteProjectPipelines", mock.Anything, "project-1").Return(nil)
	projects.On("DeleteProject", mock.Anything, "project-1").Return(nil)

	err := service.DeleteProject(context.Background(), "project-1")

	require.NoError(t, err)
	projects.AssertExpectations(t)
	apps.AssertExpectations(t)
	pipelines.AssertExpectations(t)
}

func TestDeleteProject_NotFoundStopsCascade(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	pipelines := new(MockPipelineStore)
	service := NewProjectService(projects, apps, pipelines, zap.NewNop())

	projects.On("GetProject", mock.Anything, "ghost").
		Return(nil, appErrors.NewNotFoundError("project"))

	err := service.DeleteProject(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	apps.AssertNotCalled(t, "DeleteProjectApplications", mock.Anything, mock.Anything)
	pipelines.AssertNotCalled(t, "DeleteProjectPipelines", mock.Anything, mock.Anything)
}

func TestDeleteProject_PartialFailureSurfaces(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	pipelines := new(MockPipelineStore)
	service := NewProjectService(projects, apps, pipelines, zap.NewNop())

	projects.On("GetProject", mock.Anything, "project-1").
		Return(&model.Project{ID: "project-1"}, nil)
	apps.On("DeleteProjectApplications", mock.Anything, "project-1").Return(nil)
	pipelines.On("DeleteProjectPipelines", mock.Anything, "project-1").
		Return(appErrors.NewDatabaseError("throughput exceeded", nil))

	err := service.DeleteProject(context.Background(), "project-1")

	require.Error(t, err)
	projects.AssertNotCalled(t, "DeleteProject", mock.Anything, mock.Anything)
}

func TestCreateApplication_RequiresProject(t *testing.T) {
	projects := new(MockProjectStore)
	apps := new(MockApplicationStore)
	service := NewApplicationService(apps, projects, zap.NewNop())

	projects.On("GetProject", mock.Anything, "ghost").
		Return(nil, appErrors.NewNotFoundError("project"))

	_, err := service.CreateApplication(context.Background(), &model.Application{
		ProjectID: "ghost",
		AppID:     "app-1",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	apps.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
}
