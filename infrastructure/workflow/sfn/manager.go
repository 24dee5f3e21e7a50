// Package sfn adapts AWS Step Functions as the pipeline workflow engine.
package sfn

import (
	"context"
	"time"

	"clickstream-backend/domain/model"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// WorkflowManager compiles pipeline configurations into state-machine
// definitions and runs them on a pre-provisioned state machine. All engine
// calls pass through a circuit breaker so a broken engine fails fast instead
// of piling up blocked requests.
type WorkflowManager struct {
	client          *sfn.Client
	stateMachineArn string
	breaker         *gobreaker.CircuitBreaker
	logger          *zap.Logger
}

// NewWorkflowManager creates a Step Functions workflow manager
func NewWorkflowManager(client *sfn.Client, stateMachineArn string, logger *zap.Logger) *WorkflowManager {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "workflow-engine",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &WorkflowManager{
		client:          client,
		stateMachineArn: stateMachineArn,
		breaker:         breaker,
		logger:          logger,
	}
}

// GenerateWorkflow compiles a pipeline configuration into an executable
// definition. Compilation is local; no engine call is made.
func (m *WorkflowManager) GenerateWorkflow(ctx context.Context, pipeline *model.Pipeline) (string, error) {
	definition, err := compileDefinition(pipeline)
	if err != nil {
		return "", appErrors.NewValidationError(err.Error())
	}
	return definition, nil
}

// Execute starts an execution of the definition under the given name and
// returns the execution ARN as the opaque handle.
func (m *WorkflowManager) Execute(ctx context.Context, definition, executionName string) (string, error) {
	result, err := m.breaker.Execute(func() (interface{}, error) {
		return m.client.StartExecution(ctx, &sfn.StartExecutionInput{
			StateMachineArn: aws.String(m.stateMachineArn),
			Name:            aws.String(executionName),
			Input:           aws.String(definition),
		})
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", appErrors.NewUnavailableError("workflow engine")
		}
		return "", appErrors.NewExternalError("workflow engine", err)
	}

	out := result.(*sfn.StartExecutionOutput)
	arn := aws.ToString(out.ExecutionArn)

	m.logger.Info("Workflow execution started",
		zap.String("executionName", executionName),
		zap.String("executionArn", arn),
	)
	return arn, nil
}

// GetExecutionStatus queries the live status of an execution. An empty handle
// yields ExecutionUnknown without an engine call.
func (m *WorkflowManager) GetExecutionStatus(ctx context.Context, executionArn string) (model.ExecutionStatus, error) {
	if executionArn == "" {
		return model.ExecutionUnknown, nil
	}

	result, err := m.breaker.Execute(func() (interface{}, error) {
		return m.client.DescribeExecution(ctx, &sfn.DescribeExecutionInput{
			ExecutionArn: aws.String(executionArn),
		})
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return model.ExecutionUnknown, appErrors.NewUnavailableError("workflow engine")
		}
		return model.ExecutionUnknown, appErrors.NewExternalError("workflow engine", err)
	}

	out := result.(*sfn.DescribeExecutionOutput)
	switch out.Status {
	case types.ExecutionStatusRunning:
		return model.ExecutionRunning, nil
	case types.ExecutionStatusSucceeded:
		return model.ExecutionSucceeded, nil
	case types.ExecutionStatusFailed:
		return model.ExecutionFailed, nil
	case types.ExecutionStatusTimedOut:
		return model.ExecutionTimedOut, nil
	case types.ExecutionStatusAborted:
		return model.ExecutionAborted, nil
	default:
		return model.ExecutionUnknown, nil
	}
}
