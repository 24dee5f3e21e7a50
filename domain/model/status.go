package model

// PipelineStatus is the externally visible lifecycle state of a pipeline.
type PipelineStatus string

const (
	StatusCreating PipelineStatus = "Creating"
	StatusActive   PipelineStatus = "Active"
	StatusFailed   PipelineStatus = "Failed"
	StatusUpdating PipelineStatus = "Updating"
	StatusDeleting PipelineStatus = "Deleting"
)

// ExecutionStatus is the workflow engine's own execution state, mirrored
// one-way into PipelineStatus during reads.
type ExecutionStatus string

const (
	ExecutionRunning   ExecutionStatus = "RUNNING"
	ExecutionSucceeded ExecutionStatus = "SUCCEEDED"
	ExecutionFailed    ExecutionStatus = "FAILED"
	ExecutionTimedOut  ExecutionStatus = "TIMED_OUT"
	ExecutionAborted   ExecutionStatus = "ABORTED"
	ExecutionUnknown   ExecutionStatus = ""
)

// ReconcileStatus maps a live engine status onto the stored pipeline status.
// RUNNING keeps whatever in-flight status the store holds; a pipeline that is
// being deleted stays Deleting even after its teardown execution succeeds.
func ReconcileStatus(stored PipelineStatus, live ExecutionStatus) PipelineStatus {
	switch live {
	case ExecutionSucceeded:
		if stored == StatusDeleting {
			return StatusDeleting
		}
		return StatusActive
	case ExecutionFailed, ExecutionTimedOut, ExecutionAborted:
		return StatusFailed
	default:
		return stored
	}
}
