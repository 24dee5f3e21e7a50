package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"clickstream-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// Publisher emits pipeline lifecycle events to an EventBridge bus
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single lifecycle event. Publishing is best effort from the
// caller's perspective; control-plane writes never roll back on a failed event.
func (p *Publisher) Publish(ctx context.Context, event events.PipelineEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(events.SourceBackend),
				DetailType:   aws.String(event.EventType),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.Timestamp),
			},
		},
	})
	if err != nil {
		p.logger.Error("Failed to publish pipeline event",
			zap.Error(err),
			zap.String("eventType", event.EventType),
			zap.String("pipelineID", event.PipelineID),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
