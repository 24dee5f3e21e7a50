package services

import (
	"context"
	"errors"
	"testing"

	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPipelineService(
	pipelines *MockPipelineStore,
	projects *MockProjectStore,
	plugins *MockPluginStore,
	engine *MockWorkflowEngine,
	publisher *MockEventPublisher,
	metrics *MockMetricsPublisher,
) *PipelineService {
	return NewPipelineService(pipelines, projects, plugins, engine, publisher, metrics, zap.NewNop())
}

func TestCreatePipeline_Success(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	pipeline := &model.Pipeline{
		ProjectID: "project-1",
		Name:      "prod ingestion",
		Ingestion: &model.IngestionConfig{SinkType: "s3"},
		ETL: &model.ETLConfig{
			TransformPluginID: "plugin-a",
			EnrichPluginIDs:   []string{"plugin-b"},
		},
	}

	projects.On("GetProject", mock.Anything, "project-1").Return(&model.Project{ID: "project-1"}, nil)
	engine.On("GenerateWorkflow", mock.Anything, pipeline).Return(`{"StartAt":"Ingestion"}`, nil)
	engine.On("Execute", mock.Anything, `{"StartAt":"Ingestion"}`, mock.AnythingOfType("string")).
		Return("arn:aws:states:::execution:main-1", nil)
	pipelines.On("CreatePipeline", mock.Anything, pipeline).Return(nil)
	plugins.On("BindPlugins", mock.Anything, []string{"plugin-a", "plugin-b"}, int64(1)).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	metrics.On("RecordPipelineOperation", mock.Anything, "create", nil, mock.Anything).Return()

	created, err := service.CreatePipeline(context.Background(), pipeline)

	require.NoError(t, err)
	assert.NotEmpty(t, created.PipelineID)
	assert.NotEmpty(t, created.ExecutionName)
	assert.Equal(t, "arn:aws:states:::execution:main-1", created.ExecutionArn)
	assert.Equal(t, model.StatusCreating, created.Status)
	pipelines.AssertExpectations(t)
	plugins.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestCreatePipeline_ProjectMissing(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	projects.On("GetProject", mock.Anything, "ghost").
		Return(nil, appErrors.NewNotFoundError("project"))
	metrics.On("RecordPipelineOperation", mock.Anything, "create", mock.Anything, mock.Anything).Return()

	_, err := service.CreatePipeline(context.Background(), &model.Pipeline{ProjectID: "ghost"})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	engine.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
	pipelines.AssertNotCalled(t, "CreatePipeline", mock.Anything, mock.Anything)
}

func TestCreatePipeline_EngineFailureSkipsPersist(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	projects.On("GetProject", mock.Anything, "project-1").Return(&model.Project{ID: "project-1"}, nil)
	engine.On("GenerateWorkflow", mock.Anything, mock.Anything).Return("def", nil)
	engine.On("Execute", mock.Anything, "def", mock.AnythingOfType("string")).
		Return("", appErrors.NewUnavailableError("workflow engine"))
	metrics.On("RecordPipelineOperation", mock.Anything, "create", mock.Anything, mock.Anything).Return()

	_, err := service.CreatePipeline(context.Background(), &model.Pipeline{
		ProjectID: "project-1",
		Ingestion: &model.IngestionConfig{SinkType: "s3"},
	})

	require.Error(t, err)
	pipelines.AssertNotCalled(t, "CreatePipeline", mock.Anything, mock.Anything)
}

func TestUpdatePipeline_VersionConflict(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Version:    "1700000000200",
		Status:     model.StatusActive,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	metrics.On("RecordPipelineOperation", mock.Anything, "update", mock.Anything, mock.Anything).Return()

	err := service.UpdatePipeline(context.Background(), &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Version:    "1700000000100",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsConflict(err))
	engine.AssertNotCalled(t, "GenerateWorkflow", mock.Anything, mock.Anything)
	pipelines.AssertNotCalled(t, "UpdatePipeline", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePipeline_Success(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Version:    "1700000000100",
		Status:     model.StatusActive,
		ETL:        &model.ETLConfig{TransformPluginID: "plugin-old"},
	}
	updated := &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Version:    "1700000000100",
		ETL:        &model.ETLConfig{TransformPluginID: "plugin-new"},
	}

	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GenerateWorkflow", mock.Anything, updated).Return("def-v2", nil)
	engine.On("Execute", mock.Anything, "def-v2", mock.AnythingOfType("string")).
		Return("arn:aws:states:::execution:main-2", nil)
	pipelines.On("UpdatePipeline", mock.Anything, updated, stored).Return(nil)
	plugins.On("BindPlugins", mock.Anything, []string{"plugin-new"}, int64(1)).Return(nil)
	plugins.On("BindPlugins", mock.Anything, []string{"plugin-old"}, int64(-1)).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	metrics.On("RecordPipelineOperation", mock.Anything, "update", nil, mock.Anything).Return()

	err := service.UpdatePipeline(context.Background(), updated)

	require.NoError(t, err)
	assert.Equal(t, model.StatusUpdating, updated.Status)
	assert.Equal(t, "arn:aws:states:::execution:main-2", updated.ExecutionArn)
	pipelines.AssertExpectations(t)
	plugins.AssertExpectations(t)
}

func TestUpdatePipeline_StoreConflictPropagates(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Version:    "1700000000100",
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GenerateWorkflow", mock.Anything, mock.Anything).Return("def", nil)
	engine.On("Execute", mock.Anything, "def", mock.AnythingOfType("string")).Return("arn", nil)
	pipelines.On("UpdatePipeline", mock.Anything, mock.Anything, stored).
		Return(appErrors.NewConflictError("pipeline version changed"))
	metrics.On("RecordPipelineOperation", mock.Anything, "update", mock.Anything, mock.Anything).Return()

	err := service.UpdatePipeline(context.Background(), &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsConflict(err))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeletePipeline_UnbindsPlugins(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:  "project-1",
		PipelineID: "pipe-1",
		Status:     model.StatusActive,
		Workflow:   `{"StartAt":"Ingestion"}`,
		ETL:        &model.ETLConfig{TransformPluginID: "plugin-a"},
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	pipelines.On("DeletePipeline", mock.Anything, "project-1", "pipe-1").Return(nil)
	engine.On("Execute", mock.Anything, stored.Workflow, mock.AnythingOfType("string")).
		Return("arn:aws:states:::execution:delete-1", nil)
	plugins.On("BindPlugins", mock.Anything, []string{"plugin-a"}, int64(-1)).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	metrics.On("RecordPipelineOperation", mock.Anything, "delete", nil, mock.Anything).Return()

	err := service.DeletePipeline(context.Background(), "project-1", "pipe-1")

	require.NoError(t, err)
	pipelines.AssertExpectations(t)
	plugins.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestGetPipeline_ReconcilesStatus(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:    "project-1",
		PipelineID:   "pipe-1",
		ExecutionArn: "arn:exec-1",
		Status:       model.StatusCreating,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:exec-1").
		Return(model.ExecutionSucceeded, nil)
	pipelines.On("UpdatePipelineStatus", mock.Anything, stored, model.StatusActive).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	pipeline, err := service.GetPipeline(context.Background(), "project-1", "pipe-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, pipeline.Status)
	pipelines.AssertExpectations(t)
}

func TestGetPipeline_StatusUnchangedSkipsWrite(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:    "project-1",
		PipelineID:   "pipe-1",
		ExecutionArn: "arn:exec-1",
		Status:       model.StatusCreating,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:exec-1").
		Return(model.ExecutionRunning, nil)

	pipeline, err := service.GetPipeline(context.Background(), "project-1", "pipe-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusCreating, pipeline.Status)
	pipelines.AssertNotCalled(t, "UpdatePipelineStatus", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGetPipeline_DeletingWinsOverSucceeded(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:    "project-1",
		PipelineID:   "pipe-1",
		ExecutionArn: "arn:exec-1",
		Status:       model.StatusDeleting,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:exec-1").
		Return(model.ExecutionSucceeded, nil)

	pipeline, err := service.GetPipeline(context.Background(), "project-1", "pipe-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleting, pipeline.Status)
	pipelines.AssertNotCalled(t, "UpdatePipelineStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPipeline_EngineErrorPropagates(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := &model.Pipeline{
		ProjectID:    "project-1",
		PipelineID:   "pipe-1",
		ExecutionArn: "arn:exec-1",
		Status:       model.StatusCreating,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", model.VersionLatest).
		Return(stored, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:exec-1").
		Return(model.ExecutionUnknown, errors.New("throttled"))

	_, err := service.GetPipeline(context.Background(), "project-1", "pipe-1")

	require.Error(t, err)
}

func TestGetPipelineVersion_NoReconcile(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	snapshot := &model.Pipeline{
		ProjectID:    "project-1",
		PipelineID:   "pipe-1",
		VersionTag:   "1700000000100",
		ExecutionArn: "arn:exec-0",
		Status:       model.StatusCreating,
	}
	pipelines.On("GetPipeline", mock.Anything, "project-1", "pipe-1", "1700000000100").
		Return(snapshot, nil)

	pipeline, err := service.GetPipelineVersion(context.Background(), "project-1", "pipe-1", "1700000000100")

	require.NoError(t, err)
	assert.Equal(t, model.StatusCreating, pipeline.Status)
	engine.AssertNotCalled(t, "GetExecutionStatus", mock.Anything, mock.Anything)
}

func TestListPipelines_ReconcilesEachLatest(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := []*model.Pipeline{
		{ProjectID: "project-1", PipelineID: "pipe-1", ExecutionArn: "arn:1", Status: model.StatusCreating},
		{ProjectID: "project-1", PipelineID: "pipe-2", ExecutionArn: "arn:2", Status: model.StatusActive},
	}
	params := common.PaginationParams{Page: 1, PageSize: 10, Order: "desc"}
	pipelines.On("ListPipelines", mock.Anything, "project-1", model.VersionLatest, params).
		Return(stored, 2, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:1").Return(model.ExecutionSucceeded, nil)
	engine.On("GetExecutionStatus", mock.Anything, "arn:2").Return(model.ExecutionFailed, nil)
	pipelines.On("UpdatePipelineStatus", mock.Anything, stored[0], model.StatusActive).Return(nil)
	pipelines.On("UpdatePipelineStatus", mock.Anything, stored[1], model.StatusFailed).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, total, err := service.ListPipelines(context.Background(), "project-1", model.VersionLatest, params)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, model.StatusActive, result[0].Status)
	assert.Equal(t, model.StatusFailed, result[1].Status)
	pipelines.AssertExpectations(t)
}

func TestListPipelines_VersionScopedSkipsReconcile(t *testing.T) {
	pipelines := new(MockPipelineStore)
	projects := new(MockProjectStore)
	plugins := new(MockPluginStore)
	engine := new(MockWorkflowEngine)
	publisher := new(MockEventPublisher)
	metrics := new(MockMetricsPublisher)
	service := newPipelineService(pipelines, projects, plugins, engine, publisher, metrics)

	stored := []*model.Pipeline{
		{ProjectID: "project-1", PipelineID: "pipe-1", VersionTag: "1700000000100", ExecutionArn: "arn:1", Status: model.StatusCreating},
	}
	params := common.PaginationParams{Page: 1, PageSize: 10, Order: "desc"}
	pipelines.On("ListPipelines", mock.Anything, "project-1", "1700000000100", params).
		Return(stored, 1, nil)

	_, _, err := service.ListPipelines(context.Background(), "project-1", "1700000000100", params)

	require.NoError(t, err)
	engine.AssertNotCalled(t, "GetExecutionStatus", mock.Anything, mock.Anything)
}
