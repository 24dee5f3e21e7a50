package dynamodb

import (
	"context"
	"time"

	"clickstream-backend/domain/model"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// requestIDItem is a short-lived dedupe marker; DynamoDB TTL removes expired
// markers automatically.
type requestIDItem struct {
	ID       string `dynamodbav:"id"`
	Type     string `dynamodbav:"type"`
	Prefix   string `dynamodbav:"prefix"`
	TTL      int64  `dynamodbav:"ttl"`
	CreateAt int64  `dynamodbav:"createAt"`
}

// DedupeStore implements request-id deduplication on the metadata table
type DedupeStore struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewDedupeStore creates a request-id dedupe store
func NewDedupeStore(client *dynamodb.Client, tableName string, ttl time.Duration, logger *zap.Logger) *DedupeStore {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}

	return &DedupeStore{
		client:    client,
		tableName: tableName,
		ttl:       ttl,
		logger:    logger,
	}
}

// MarkRequestID records the request id with a conditional write. Only the
// first writer succeeds; a concurrent or repeated request sees duplicate=true.
func (s *DedupeStore) MarkRequestID(ctx context.Context, requestID string) (bool, error) {
	item := requestIDItem{
		ID:       requestID,
		Type:     model.RequestIDTypeKey(requestID),
		Prefix:   model.PrefixRequestID,
		TTL:      time.Now().Add(s.ttl).Unix(),
		CreateAt: nowMillis(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return false, appErrors.Wrap(err, "failed to marshal request-id marker")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			s.logger.Warn("Duplicate request id", zap.String("requestID", requestID))
			return true, nil
		}
		return false, appErrors.NewDatabaseError("mark request id", err)
	}

	return false, nil
}
