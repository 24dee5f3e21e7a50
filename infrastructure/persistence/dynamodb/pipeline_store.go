package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CreatePipeline persists the initial latest record of a pipeline
func (s *Store) CreatePipeline(ctx context.Context, pipeline *model.Pipeline) error {
	now := nowMillis()
	pipeline.Type = model.PipelineTypeKey(pipeline.PipelineID, model.VersionLatest)
	pipeline.Prefix = model.PrefixPipeline
	pipeline.VersionTag = model.VersionLatest
	pipeline.Version = strconv.FormatInt(now, 10)
	pipeline.Deleted = false
	pipeline.CreateAt = now
	pipeline.UpdateAt = now

	av, err := attributevalue.MarshalMap(pipeline)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal pipeline")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("pipeline already exists")
		}
		return appErrors.NewDatabaseError("create pipeline", err)
	}

	s.logger.Info("Pipeline created",
		zap.String("projectID", pipeline.ProjectID),
		zap.String("pipelineID", pipeline.PipelineID),
		zap.String("version", pipeline.Version),
	)
	return nil
}

// GetPipeline retrieves a live pipeline record by version tag
func (s *Store) GetPipeline(ctx context.Context, projectID, pipelineID, versionTag string) (*model.Pipeline, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(projectID, model.PipelineTypeKey(pipelineID, versionTag)),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get pipeline", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("pipeline")
	}

	var pipeline model.Pipeline
	if err := attributevalue.UnmarshalMap(out.Item, &pipeline); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal pipeline")
	}
	if pipeline.Deleted {
		return nil, appErrors.NewNotFoundError("pipeline")
	}

	return &pipeline, nil
}

// UpdatePipeline advances the latest record to updated in a single
// all-or-nothing transaction: the pre-update state cur is inserted as an
// immutable version snapshot (guarded against overwrite) and the latest
// record is rewritten under the condition that its stored version still
// equals cur.Version. If another writer advanced the version first the whole
// transaction is rejected and the caller gets Conflict; it must re-read and
// retry.
func (s *Store) UpdatePipeline(ctx context.Context, updated, cur *model.Pipeline) error {
	snapshot := *cur
	snapshot.Type = model.PipelineTypeKey(cur.PipelineID, cur.Version)
	snapshot.VersionTag = cur.Version

	snapshotItem, err := attributevalue.MarshalMap(&snapshot)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal pipeline snapshot")
	}

	now := nowMillis()
	newVersion := strconv.FormatInt(now, 10)

	update := expression.
		Set(expression.Name("name"), expression.Value(updated.Name)).
		Set(expression.Name("description"), expression.Value(updated.Description)).
		Set(expression.Name("network"), expression.Value(updated.Network)).
		Set(expression.Name("bucket"), expression.Value(updated.Bucket)).
		Set(expression.Name("ingestion"), expression.Value(updated.Ingestion)).
		Set(expression.Name("etl"), expression.Value(updated.ETL)).
		Set(expression.Name("report"), expression.Value(updated.Report)).
		Set(expression.Name("workflow"), expression.Value(updated.Workflow)).
		Set(expression.Name("executionName"), expression.Value(updated.ExecutionName)).
		Set(expression.Name("executionArn"), expression.Value(updated.ExecutionArn)).
		Set(expression.Name("status"), expression.Value(updated.Status)).
		Set(expression.Name("version"), expression.Value(newVersion)).
		Set(expression.Name("updateAt"), expression.Value(now))

	cond := expression.Name("version").Equal(expression.Value(cur.Version)).
		And(expression.Name("deleted").Equal(expression.Value(false)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build pipeline update expression")
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.tableName),
					Item:                snapshotItem,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Update: &types.Update{
					TableName:                 aws.String(s.tableName),
					Key:                       itemKey(cur.ProjectID, model.PipelineTypeKey(cur.PipelineID, model.VersionLatest)),
					UpdateExpression:          expr.Update(),
					ConditionExpression:       expr.Condition(),
					ExpressionAttributeNames:  expr.Names(),
					ExpressionAttributeValues: expr.Values(),
				},
			},
		},
	})
	if err != nil {
		if isTransactionCanceled(err) {
			return appErrors.NewConflictError("pipeline was updated by another request, please refresh and retry")
		}
		return appErrors.NewDatabaseError("update pipeline", err)
	}

	updated.Version = newVersion
	updated.VersionTag = model.VersionLatest
	updated.UpdateAt = now

	s.logger.Info("Pipeline updated",
		zap.String("projectID", cur.ProjectID),
		zap.String("pipelineID", cur.PipelineID),
		zap.String("snapshotVersion", cur.Version),
		zap.String("newVersion", newVersion),
	)
	return nil
}

// UpdatePipelineStatus writes a reconciled status back to a single record
func (s *Store) UpdatePipelineStatus(ctx context.Context, pipeline *model.Pipeline, status model.PipelineStatus) error {
	update := expression.Set(expression.Name("status"), expression.Value(status)).
		Set(expression.Name("updateAt"), expression.Value(nowMillis()))

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build status update expression")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(pipeline.ProjectID, pipeline.Type),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.NewDatabaseError("update pipeline status", err)
	}

	return nil
}

// DeletePipeline soft-deletes every live version record of a pipeline and
// marks each with Deleting status. The loop is sequential and not atomic
// across versions; a retry re-scans the remaining live records.
func (s *Store) DeletePipeline(ctx context.Context, projectID, pipelineID string) error {
	return s.deletePipelineRecords(ctx, projectID, model.PipelineTypeKey(pipelineID, ""))
}

// DeleteProjectPipelines soft-deletes every live pipeline record of a project
func (s *Store) DeleteProjectPipelines(ctx context.Context, projectID string) error {
	return s.deletePipelineRecords(ctx, projectID, model.PrefixPipeline+"#")
}

func (s *Store) deletePipelineRecords(ctx context.Context, projectID, typePrefix string) error {
	keyCond := expression.Key("id").Equal(expression.Value(projectID)).
		And(expression.Key("type").BeginsWith(typePrefix))
	filter := expression.Name("deleted").Equal(expression.Value(false))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build pipeline query")
	}

	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return appErrors.NewDatabaseError("list pipeline records", err)
	}

	for _, item := range items {
		var pipeline model.Pipeline
		if err := attributevalue.UnmarshalMap(item, &pipeline); err != nil {
			s.logger.Warn("Failed to unmarshal pipeline item", zap.Error(err))
			continue
		}
		extra := map[string]interface{}{"status": model.StatusDeleting}
		if err := s.softDeleteItem(ctx, pipeline.ProjectID, pipeline.Type, extra); err != nil {
			return appErrors.NewDatabaseError(fmt.Sprintf("delete pipeline record %s", pipeline.Type), err)
		}
	}

	return nil
}

// ListPipelines returns one page of live pipeline records with the given
// version tag, optionally scoped to a project
func (s *Store) ListPipelines(ctx context.Context, projectID, versionTag string, params common.PaginationParams) ([]*model.Pipeline, int, error) {
	if versionTag == "" {
		versionTag = model.VersionLatest
	}
	scope := expression.Name("versionTag").Equal(expression.Value(versionTag))
	if projectID != "" {
		scope = scope.And(expression.Name("id").Equal(expression.Value(projectID)))
	}

	items, err := s.listByPrefix(ctx, model.PrefixPipeline, &scope, params.Ascending())
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list pipelines", err)
	}

	pipelines := make([]*model.Pipeline, 0, len(items))
	for _, item := range items {
		var pipeline model.Pipeline
		if err := attributevalue.UnmarshalMap(item, &pipeline); err != nil {
			s.logger.Warn("Failed to unmarshal pipeline item", zap.Error(err))
			continue
		}
		pipelines = append(pipelines, &pipeline)
	}

	total := len(pipelines)
	start, end := common.PageBounds(params.Page, total, params.PageSize)
	return pipelines[start:end], total, nil
}
