package ports

import (
	"context"
	"time"

	"clickstream-backend/domain/events"
	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
)

// ProjectStore defines the interface for project persistence.
// This is a port in hexagonal architecture - the services don't know about the implementation
type ProjectStore interface {
	// CreateProject persists a new project
	CreateProject(ctx context.Context, project *model.Project) error

	// GetProject retrieves a live (non-deleted) project or returns NotFound
	GetProject(ctx context.Context, projectID string) (*model.Project, error)

	// UpdateProject applies the non-nil fields of the patch to the project
	UpdateProject(ctx context.Context, patch *ProjectPatch) error

	// DeleteProject soft-deletes the project record
	DeleteProject(ctx context.Context, projectID string) error

	// ListProjects returns one page of live projects plus the total live count
	ListProjects(ctx context.Context, params common.PaginationParams) ([]*model.Project, int, error)
}

// ApplicationStore defines the interface for application persistence
type ApplicationStore interface {
	// CreateApplication persists a new application under a project
	CreateApplication(ctx context.Context, app *model.Application) error

	// GetApplication retrieves a live application or returns NotFound
	GetApplication(ctx context.Context, projectID, appID string) (*model.Application, error)

	// DeleteApplication soft-deletes the application record
	DeleteApplication(ctx context.Context, projectID, appID string) error

	// DeleteProjectApplications soft-deletes every live application of a
	// project, one item at a time. Not atomic across the set.
	DeleteProjectApplications(ctx context.Context, projectID string) error

	// ListApplications returns one page of a project's live applications plus the total
	ListApplications(ctx context.Context, projectID string, params common.PaginationParams) ([]*model.Application, int, error)
}

// PipelineStore defines the interface for versioned pipeline persistence
type PipelineStore interface {
	// CreatePipeline persists the initial latest record of a pipeline
	CreatePipeline(ctx context.Context, pipeline *model.Pipeline) error

	// GetPipeline retrieves a live pipeline record by version tag or returns NotFound
	GetPipeline(ctx context.Context, projectID, pipelineID, versionTag string) (*model.Pipeline, error)

	// UpdatePipeline atomically snapshots cur as an immutable version record and
	// advances the latest record to updated, conditioned on the stored version
	// still equalling cur.Version. A lost race surfaces as Conflict.
	UpdatePipeline(ctx context.Context, updated, cur *model.Pipeline) error

	// UpdatePipelineStatus writes a reconciled status back to a single record
	UpdatePipelineStatus(ctx context.Context, pipeline *model.Pipeline, status model.PipelineStatus) error

	// DeletePipeline soft-deletes every version record of the pipeline and
	// marks each with Deleting status. Not atomic across versions.
	DeletePipeline(ctx context.Context, projectID, pipelineID string) error

	// DeleteProjectPipelines soft-deletes every live pipeline record of a
	// project across all pipelines and versions
	DeleteProjectPipelines(ctx context.Context, projectID string) error

	// ListPipelines returns one page of live pipeline records with the given
	// version tag, optionally scoped to a project, plus the total
	ListPipelines(ctx context.Context, projectID, versionTag string, params common.PaginationParams) ([]*model.Pipeline, int, error)
}

// PluginStore defines the interface for plugin persistence
type PluginStore interface {
	// CreatePlugin persists a new user plugin
	CreatePlugin(ctx context.Context, plugin *model.Plugin) error

	// GetPlugin retrieves a live plugin item or returns NotFound
	GetPlugin(ctx context.Context, pluginID string) (*model.Plugin, error)

	// UpdatePlugin applies the non-nil fields of the patch, conditioned on the
	// plugin being unbound (bindCount == 0); Conflict otherwise
	UpdatePlugin(ctx context.Context, patch *PluginPatch) error

	// DeletePlugin soft-deletes the plugin, conditioned on bindCount == 0
	DeletePlugin(ctx context.Context, pluginID string) error

	// ListPlugins returns one page of live plugins of the given type (all types
	// when empty) plus the total; built-ins from the dictionary catalog are merged in
	ListPlugins(ctx context.Context, pluginType string, params common.PaginationParams) ([]*model.Plugin, int, error)

	// BindPlugins adjusts the bind count of each stored plugin by delta
	BindPlugins(ctx context.Context, pluginIDs []string, delta int64) error
}

// DictionaryStore defines the interface for named configuration blobs
type DictionaryStore interface {
	// GetDictionary retrieves a dictionary entry or returns NotFound
	GetDictionary(ctx context.Context, name string) (*model.Dictionary, error)

	// PutDictionary creates or replaces a dictionary entry
	PutDictionary(ctx context.Context, dict *model.Dictionary) error

	// ListDictionaries returns every dictionary entry
	ListDictionaries(ctx context.Context) ([]*model.Dictionary, error)
}

// DedupeStore records short-lived request-id markers for idempotency
type DedupeStore interface {
	// MarkRequestID records the request id and reports whether it was already seen
	MarkRequestID(ctx context.Context, requestID string) (duplicate bool, err error)
}

// ProjectPatch carries the changed fields of a project update; nil means unchanged
type ProjectPatch struct {
	ProjectID   string
	Name        *string
	Description *string
	Emails      *string
	Status      *string
}

// PluginPatch carries the changed fields of a plugin update; nil means unchanged
type PluginPatch struct {
	PluginID        string
	Description     *string
	MainFunction    *string
	JarFile         *string
	DependencyFiles *[]string
}

// WorkflowEngine is the opaque execution backend for pipeline workflows
type WorkflowEngine interface {
	// GenerateWorkflow compiles a pipeline configuration into an executable definition
	GenerateWorkflow(ctx context.Context, pipeline *model.Pipeline) (string, error)

	// Execute submits a definition for execution and returns the execution handle
	Execute(ctx context.Context, definition, executionName string) (string, error)

	// GetExecutionStatus queries the live status of an execution; an unknown or
	// missing handle yields ExecutionUnknown
	GetExecutionStatus(ctx context.Context, executionArn string) (model.ExecutionStatus, error)
}

// EventPublisher emits pipeline lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event events.PipelineEvent) error
}

// MetricsPublisher records control-plane operation metrics
type MetricsPublisher interface {
	RecordPipelineOperation(ctx context.Context, operation string, err error, duration time.Duration)
}
