package sfn

import (
	"encoding/json"
	"fmt"

	"clickstream-backend/domain/model"
)

// State is a single state of an Amazon States Language definition.
type State struct {
	Type       string                 `json:"Type"`
	Comment    string                 `json:"Comment,omitempty"`
	Parameters map[string]interface{} `json:"Parameters,omitempty"`
	Next       string                 `json:"Next,omitempty"`
	End        bool                   `json:"End,omitempty"`
}

// Definition is a minimal Amazon States Language document.
type Definition struct {
	Comment string           `json:"Comment"`
	StartAt string           `json:"StartAt"`
	States  map[string]State `json:"States"`
}

// stackStep describes one provisioning step of the pipeline workflow.
type stackStep struct {
	name       string
	parameters map[string]interface{}
}

// compileDefinition turns a pipeline configuration into a sequential
// provisioning workflow: one step per present sub-configuration, chained in
// ingestion -> ETL -> report order.
func compileDefinition(pipeline *model.Pipeline) (string, error) {
	steps := make([]stackStep, 0, 3)

	if pipeline.Ingestion != nil {
		steps = append(steps, stackStep{
			name: "Ingestion",
			parameters: map[string]interface{}{
				"projectId":  pipeline.ProjectID,
				"pipelineId": pipeline.PipelineID,
				"protocol":   pipeline.Ingestion.Protocol,
				"domain":     pipeline.Ingestion.Domain,
				"serverMin":  pipeline.Ingestion.ServerMin,
				"serverMax":  pipeline.Ingestion.ServerMax,
				"sinkType":   pipeline.Ingestion.SinkType,
				"bucket":     pipeline.Bucket,
				"network":    pipeline.Network,
			},
		})
	}

	if pipeline.ETL != nil {
		steps = append(steps, stackStep{
			name: "ETL",
			parameters: map[string]interface{}{
				"projectId":           pipeline.ProjectID,
				"pipelineId":          pipeline.PipelineID,
				"sourceFormat":        pipeline.ETL.SourceFormat,
				"scheduleExpression":  pipeline.ETL.ScheduleExpression,
				"dataFreshnessInHour": pipeline.ETL.DataFreshnessInHour,
				"transformPluginId":   pipeline.ETL.TransformPluginID,
				"enrichPluginIds":     pipeline.ETL.EnrichPluginIDs,
				"bucket":              pipeline.Bucket,
			},
		})
	}

	if pipeline.Report != nil {
		steps = append(steps, stackStep{
			name: "Report",
			parameters: map[string]interface{}{
				"projectId":        pipeline.ProjectID,
				"pipelineId":       pipeline.PipelineID,
				"dashboardEnabled": pipeline.Report.DashboardEnabled,
				"namespace":        pipeline.Report.Namespace,
			},
		})
	}

	if len(steps) == 0 {
		return "", fmt.Errorf("pipeline %s has no sub-configuration to provision", pipeline.PipelineID)
	}

	def := Definition{
		Comment: fmt.Sprintf("Provisioning workflow for pipeline %s", pipeline.PipelineID),
		StartAt: steps[0].name,
		States:  make(map[string]State, len(steps)),
	}

	for i, step := range steps {
		state := State{
			Type:       "Task",
			Parameters: step.parameters,
		}
		if i+1 < len(steps) {
			state.Next = steps[i+1].name
		} else {
			state.End = true
		}
		def.States[step.name] = state
	}

	raw, err := json.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("failed to marshal workflow definition: %w", err)
	}
	return string(raw), nil
}
