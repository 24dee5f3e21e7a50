// Package dynamodb implements the metadata record store on a single
// DynamoDB table keyed by (id, type) with a prefix-time GSI for kind
// listings.
package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Store provides record access for every entity kind in the metadata table.
// It implements the persistence ports consumed by the services.
type Store struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewStore creates a new metadata store
func NewStore(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// nowMillis returns the current time as a millisecond epoch, the insertion
// ordering attribute of the prefix-time GSI.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// queryAll accumulates every server page of a query before returning.
func (s *Store) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// scanAll accumulates every server page of a scan before returning.
func (s *Store) scanAll(ctx context.Context, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// isConditionalCheckFailed reports whether an error is a failed item-level
// condition, which the store surfaces as Conflict or duplicate depending on
// the call site.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// isTransactionCanceled reports whether a TransactWriteItems call was
// rejected, which happens when any of its condition checks fail.
func isTransactionCanceled(err error) bool {
	var tce *types.TransactionCanceledException
	return errors.As(err, &tce)
}
