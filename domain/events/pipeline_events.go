package events

import "time"

// Event types emitted by the pipeline service.
const (
	SourceBackend = "clickstream.backend"

	PipelineCreated       = "pipeline.created"
	PipelineUpdated       = "pipeline.updated"
	PipelineDeleted       = "pipeline.deleted"
	PipelineStatusChanged = "pipeline.status-changed"
)

// PipelineEvent is a lifecycle notification published to the event bus.
type PipelineEvent struct {
	EventType  string    `json:"eventType"`
	ProjectID  string    `json:"projectId"`
	PipelineID string    `json:"pipelineId"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPipelineEvent builds a timestamped lifecycle event.
func NewPipelineEvent(eventType, projectID, pipelineID, status string) PipelineEvent {
	return PipelineEvent{
		EventType:  eventType,
		ProjectID:  projectID,
		PipelineID: pipelineID,
		Status:     status,
		Timestamp:  time.Now(),
	}
}
