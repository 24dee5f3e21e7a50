package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const metricNamespace = "Clickstream/ControlPlane"

// Metrics publishes control-plane operation metrics to CloudWatch
type Metrics struct {
	client *cloudwatch.Client
	logger *zap.Logger
}

// NewMetrics creates a CloudWatch metrics publisher
func NewMetrics(client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		client: client,
		logger: logger,
	}
}

// RecordPipelineOperation records latency and outcome of a pipeline
// operation. Metric failures are logged and swallowed; they never fail the
// operation itself.
func (m *Metrics) RecordPipelineOperation(ctx context.Context, operation string, opErr error, duration time.Duration) {
	outcome := "Success"
	if opErr != nil {
		outcome = "Failure"
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricNamespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("PipelineOperationLatency"),
				Dimensions: dimensions,
				Unit:       types.StandardUnitMilliseconds,
				Value:      aws.Float64(float64(duration.Milliseconds())),
			},
			{
				MetricName: aws.String("PipelineOperationCount"),
				Dimensions: dimensions,
				Unit:       types.StandardUnitCount,
				Value:      aws.Float64(1),
			},
		},
	})
	if err != nil {
		m.logger.Warn("Failed to publish pipeline metrics",
			zap.Error(err),
			zap.String("operation", operation),
		)
	}
}
