package services

import (
	"context"
	"time"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/events"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"

	"github.com/stretchr/testify/mock"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) CreateProject(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectStore) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) UpdateProject(ctx context.Context, patch *ports.ProjectPatch) error {
	return m.Called(ctx, patch).Error(0)
}

func (m *MockProjectStore) DeleteProject(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockProjectStore) ListProjects(ctx context.Context, params common.PaginationParams) ([]*model.Project, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Project), args.Int(1), args.Error(2)
}

type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) CreateApplication(ctx context.Context, app *model.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationStore) GetApplication(ctx context.Context, projectID, appID string) (*model.Application, error) {
	args := m.Called(ctx, projectID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationStore) DeleteApplication(ctx context.Context, projectID, appID string) error {
	return m.Called(ctx, projectID, appID).Error(0)
}

func (m *MockApplicationStore) DeleteProjectApplications(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockApplicationStore) ListApplications(ctx context.Context, projectID string, params common.PaginationParams) ([]*model.Application, int, error) {
	args := m.Called(ctx, projectID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Application), args.Int(1), args.Error(2)
}

type MockPipelineStore struct {
	mock.Mock
}

func (m *MockPipelineStore) CreatePipeline(ctx context.Context, pipeline *model.Pipeline) error {
	return m.Called(ctx, pipeline).Error(0)
}

func (m *MockPipelineStore) GetPipeline(ctx context.Context, projectID, pipelineID, versionTag string) (*model.Pipeline, error) {
	args := m.Called(ctx, projectID, pipelineID, versionTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pipeline), args.Error(1)
}

func (m *MockPipelineStore) UpdatePipeline(ctx context.Context, updated, cur *model.Pipeline) error {
	return m.Called(ctx, updated, cur).Error(0)
}

func (m *MockPipelineStore) UpdatePipelineStatus(ctx context.Context, pipeline *model.Pipeline, status model.PipelineStatus) error {
	return m.Called(ctx, pipeline, status).Error(0)
}

func (m *MockPipelineStore) DeletePipeline(ctx context.Context, projectID, pipelineID string) error {
	return m.Called(ctx, projectID, pipelineID).Error(0)
}

func (m *MockPipelineStore) DeleteProjectPipelines(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockPipelineStore) ListPipelines(ctx context.Context, projectID, versionTag string, params common.PaginationParams) ([]*model.Pipeline, int, error) {
	args := m.Called(ctx, projectID, versionTag, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Pipeline), args.Int(1), args.Error(2)
}

type MockPluginStore struct {
	mock.Mock
}

func (m *MockPluginStore) CreatePlugin(ctx context.Context, plugin *model.Plugin) error {
	return m.Called(ctx, plugin).Error(0)
}

func (m *MockPluginStore) GetPlugin(ctx context.Context, pluginID string) (*model.Plugin, error) {
	args := m.Called(ctx, pluginID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plugin), args.Error(1)
}

func (m *MockPluginStore) UpdatePlugin(ctx context.Context, patch *ports.PluginPatch) error {
	return m.Called(ctx, patch).Error(0)
}

func (m *MockPluginStore) DeletePlugin(ctx context.Context, pluginID string) error {
	return m.Called(ctx, pluginID).Error(0)
}

func (m *MockPluginStore) ListPlugins(ctx context.Context, pluginType string, params common.PaginationParams) ([]*model.Plugin, int, error) {
	args := m.Called(ctx, pluginType, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Plugin), args.Int(1), args.Error(2)
}

func (m *MockPluginStore) BindPlugins(ctx context.Context, pluginIDs []string, delta int64) error {
	return m.Called(ctx, pluginIDs, delta).Error(0)
}

type MockDictionaryStore struct {
	mock.Mock
}

func (m *MockDictionaryStore) GetDictionary(ctx context.Context, name string) (*model.Dictionary, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dictionary), args.Error(1)
}

func (m *MockDictionaryStore) PutDictionary(ctx context.Context, dict *model.Dictionary) error {
	return m.Called(ctx, dict).Error(0)
}

func (m *MockDictionaryStore) ListDictionaries(ctx context.Context) ([]*model.Dictionary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dictionary), args.Error(1)
}

type MockWorkflowEngine struct {
	mock.Mock
}

func (m *MockWorkflowEngine) GenerateWorkflow(ctx context.Context, pipeline *model.Pipeline) (string, error) {
	args := m.Called(ctx, pipeline)
	return args.String(0), args.Error(1)
}

func (m *MockWorkflowEngine) Execute(ctx context.Context, definition, executionName string) (string, error) {
	args := m.Called(ctx, definition, executionName)
	return args.String(0), args.Error(1)
}

func (m *MockWorkflowEngine) GetExecutionStatus(ctx context.Context, executionArn string) (model.ExecutionStatus, error) {
	args := m.Called(ctx, executionArn)
	return args.Get(0).(model.ExecutionStatus), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.PipelineEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockMetricsPublisher struct {
	mock.Mock
}

func (m *MockMetricsPublisher) RecordPipelineOperation(ctx context.Context, operation string, err error, duration time.Duration) {
	m.Called(ctx, operation, err, duration)
}
