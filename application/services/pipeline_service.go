package services

import (
	"context"
	"fmt"
	"time"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/events"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PipelineService orchestrates pipeline lifecycle: it delegates execution to
// the workflow engine and durability to the record store, and reconciles
// stored status from live execution status on every read.
type PipelineService struct {
	pipelines ports.PipelineStore
	projects  ports.ProjectStore
	plugins   ports.PluginStore
	engine    ports.WorkflowEngine
	events    ports.EventPublisher
	metrics   ports.MetricsPublisher
	logger    *zap.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	pipelines ports.PipelineStore,
	projects ports.ProjectStore,
	plugins ports.PluginStore,
	engine ports.WorkflowEngine,
	eventPublisher ports.EventPublisher,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *PipelineService {
	return &PipelineService{
		pipelines: pipelines,
		projects:  projects,
		plugins:   plugins,
		engine:    engine,
		events:    eventPublisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreatePipeline generates ids, compiles and submits the provisioning
// workflow, then persists the pipeline record with the execution handle.
func (s *PipelineService) CreatePipeline(ctx context.Context, pipeline *model.Pipeline) (p *model.Pipeline, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordPipelineOperation(ctx, "create", err, time.Since(start)) }()

	if _, err = s.projects.GetProject(ctx, pipeline.ProjectID); err != nil {
		return nil, err
	}

	pipeline.PipelineID = uuid.New().String()
	pipeline.ExecutionName = fmt.Sprintf("main-%s", uuid.New().String())

	definition, err := s.engine.GenerateWorkflow(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	pipeline.Workflow = definition

	executionArn, err := s.engine.Execute(ctx, definition, pipeline.ExecutionName)
	if err != nil {
		return nil, err
	}
	pipeline.ExecutionArn = executionArn
	pipeline.Status = model.StatusCreating

	if err = s.pipelines.CreatePipeline(ctx, pipeline); err != nil {
		return nil, err
	}

	if pluginIDs := pipeline.PluginIDs(); len(pluginIDs) > 0 {
		if bindErr := s.plugins.BindPlugins(ctx, pluginIDs, 1); bindErr != nil {
			s.logger.Warn("Failed to bind plugins for new pipeline",
				zap.Error(bindErr),
				zap.String("pipelineID", pipeline.PipelineID),
			)
		}
	}

	s.publish(ctx, events.PipelineCreated, pipeline)
	return pipeline, nil
}

// GetPipeline retrieves the latest record of a pipeline with its status
// reconciled against the live execution.
func (s *PipelineService) GetPipeline(ctx context.Context, projectID, pipelineID string) (*model.Pipeline, error) {
	pipeline, err := s.pipelines.GetPipeline(ctx, projectID, pipelineID, model.VersionLatest)
	if err != nil {
		return nil, err
	}

	if err := s.reconcileStatus(ctx, pipeline); err != nil {
		return nil, err
	}

	return pipeline, nil
}

// GetPipelineVersion retrieves an immutable version snapshot without
// reconciliation; snapshots keep the status they were frozen with.
func (s *PipelineService) GetPipelineVersion(ctx context.Context, projectID, pipelineID, versionTag string) (*model.Pipeline, error) {
	return s.pipelines.GetPipeline(ctx, projectID, pipelineID, versionTag)
}

// ListPipelines returns one page of pipelines, each reconciled against its
// live execution, one blocking engine call per item.
func (s *PipelineService) ListPipelines(ctx context.Context, projectID, versionTag string, params common.PaginationParams) ([]*model.Pipeline, int, error) {
	pipelines, total, err := s.pipelines.ListPipelines(ctx, projectID, versionTag, params)
	if err != nil {
		return nil, 0, err
	}

	if versionTag == "" || versionTag == model.VersionLatest {
		for _, pipeline := range pipelines {
			if err := s.reconcileStatus(ctx, pipeline); err != nil {
				return nil, 0, err
			}
		}
	}

	return pipelines, total, nil
}

// UpdatePipeline applies a new configuration to a pipeline. The caller's
// updated record carries the version it last read; if the stored latest
// version has moved on the update fails with Conflict and nothing is written.
func (s *PipelineService) UpdatePipeline(ctx context.Context, updated *model.Pipeline) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordPipelineOperation(ctx, "update", err, time.Since(start)) }()

	cur, err := s.pipelines.GetPipeline(ctx, updated.ProjectID, updated.PipelineID, model.VersionLatest)
	if err != nil {
		return err
	}
	if updated.Version != "" && updated.Version != cur.Version {
		return appErrors.NewConflictError("pipeline was updated by another request, please refresh and retry")
	}

	definition, err := s.engine.GenerateWorkflow(ctx, updated)
	if err != nil {
		return err
	}
	updated.Workflow = definition
	updated.ExecutionName = fmt.Sprintf("main-%s", uuid.New().String())

	executionArn, err := s.engine.Execute(ctx, definition, updated.ExecutionName)
	if err != nil {
		return err
	}
	updated.ExecutionArn = executionArn
	updated.Status = model.StatusUpdating

	if err = s.pipelines.UpdatePipeline(ctx, updated, cur); err != nil {
		return err
	}

	s.rebindPlugins(ctx, cur, updated)
	s.publish(ctx, events.PipelineUpdated, updated)
	return nil
}

// DeletePipeline soft-deletes every version record of a pipeline, marking
// them Deleting, starts a best-effort teardown execution and releases the
// pipeline's plugin bindings.
func (s *PipelineService) DeletePipeline(ctx context.Context, projectID, pipelineID string) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordPipelineOperation(ctx, "delete", err, time.Since(start)) }()

	cur, err := s.pipelines.GetPipeline(ctx, projectID, pipelineID, model.VersionLatest)
	if err != nil {
		return err
	}

	if err = s.pipelines.DeletePipeline(ctx, projectID, pipelineID); err != nil {
		return err
	}

	// Teardown is best effort; the records are already hidden either way.
	if cur.Workflow != "" {
		teardownName := fmt.Sprintf("delete-%s", uuid.New().String())
		if _, execErr := s.engine.Execute(ctx, cur.Workflow, teardownName); execErr != nil {
			s.logger.Warn("Failed to start teardown execution",
				zap.Error(execErr),
				zap.String("pipelineID", pipelineID),
			)
		}
	}

	if pluginIDs := cur.PluginIDs(); len(pluginIDs) > 0 {
		if bindErr := s.plugins.BindPlugins(ctx, pluginIDs, -1); bindErr != nil {
			s.logger.Warn("Failed to unbind plugins for deleted pipeline",
				zap.Error(bindErr),
				zap.String("pipelineID", pipelineID),
			)
		}
	}

	cur.Status = model.StatusDeleting
	s.publish(ctx, events.PipelineDeleted, cur)
	return nil
}

// reconcileStatus mirrors the live engine status into the stored record when
// they disagree. Mirroring is one-way; the store never pushes status into the
// engine.
func (s *PipelineService) reconcileStatus(ctx context.Context, pipeline *model.Pipeline) error {
	if pipeline.ExecutionArn == "" {
		return nil
	}

	live, err := s.engine.GetExecutionStatus(ctx, pipeline.ExecutionArn)
	if err != nil {
		return err
	}

	reconciled := model.ReconcileStatus(pipeline.Status, live)
	if reconciled == pipeline.Status {
		return nil
	}

	if err := s.pipelines.UpdatePipelineStatus(ctx, pipeline, reconciled); err != nil {
		return err
	}

	s.logger.Info("Pipeline status reconciled",
		zap.String("pipelineID", pipeline.PipelineID),
		zap.String("from", string(pipeline.Status)),
		zap.String("to", string(reconciled)),
	)

	pipeline.Status = reconciled
	s.publish(ctx, events.PipelineStatusChanged, pipeline)
	return nil
}

// rebindPlugins moves bind counts from the previous plugin set to the next one
func (s *PipelineService) rebindPlugins(ctx context.Context, prev, next *model.Pipeline) {
	oldIDs := make(map[string]bool)
	for _, id := range prev.PluginIDs() {
		oldIDs[id] = true
	}
	newIDs := make(map[string]bool)
	for _, id := range next.PluginIDs() {
		newIDs[id] = true
	}

	var added, removed []string
	for id := range newIDs {
		if !oldIDs[id] {
			added = append(added, id)
		}
	}
	for id := range oldIDs {
		if !newIDs[id] {
			removed = append(removed, id)
		}
	}

	if len(added) > 0 {
		if err := s.plugins.BindPlugins(ctx, added, 1); err != nil {
			s.logger.Warn("Failed to bind added plugins", zap.Error(err))
		}
	}
	if len(removed) > 0 {
		if err := s.plugins.BindPlugins(ctx, removed, -1); err != nil {
			s.logger.Warn("Failed to unbind removed plugins", zap.Error(err))
		}
	}
}

// publish emits a lifecycle event, best effort
func (s *PipelineService) publish(ctx context.Context, eventType string, pipeline *model.Pipeline) {
	event := events.NewPipelineEvent(eventType, pipeline.ProjectID, pipeline.PipelineID, string(pipeline.Status))
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish pipeline event",
			zap.Error(err),
			zap.String("eventType", eventType),
		)
	}
}
