package dynamodb

import (
	"context"

	"clickstream-backend/application/ports"
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

// CreateProject persists a new project, rejecting duplicate ids
func (s *Store) CreateProject(ctx context.Context, project *model.Project) error {
	now := nowMillis()
	project.Type = model.ProjectTypeKey(project.ID)
	project.Prefix = model.PrefixProject
	project.Deleted = false
	project.CreateAt = now
	project.UpdateAt = now

	av, err := attributevalue.MarshalMap(project)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal project")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("project already exists")
		}
		return appErrors.NewDatabaseError("create project", err)
	}

	s.logger.Info("Project created", zap.String("projectID", project.ID))
	return nil
}

// GetProject retrieves a live project or returns NotFound
func (s *Store) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(projectID, model.ProjectTypeKey(projectID)),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get project", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("project")
	}

	var project model.Project
	if err := attributevalue.UnmarshalMap(out.Item, &project); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal project")
	}
	if project.Deleted {
		return nil, appErrors.NewNotFoundError("project")
	}

	return &project, nil
}

// UpdateProject folds the non-nil patch fields into a single update
// expression, so only changed attributes are written.
func (s *Store) UpdateProject(ctx context.Context, patch *ports.ProjectPatch) error {
	update := expression.Set(expression.Name("updateAt"), expression.Value(nowMillis()))
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", patch.Name},
		{"description", patch.Description},
		{"emails", patch.Emails},
		{"status", patch.Status},
	} {
		if f.value != nil {
			update = update.Set(expression.Name(f.name), expression.Value(*f.value))
		}
	}

	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("deleted").Equal(expression.Value(false)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build project update expression")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(patch.ProjectID, model.ProjectTypeKey(patch.ProjectID)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewNotFoundError("project")
		}
		return appErrors.NewDatabaseError("update project", err)
	}

	return nil
}

// DeleteProject flips the project's delete flag. Cascading deletes of the
// project's applications and pipelines are driven by the service layer.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.softDeleteItem(ctx, projectID, model.ProjectTypeKey(projectID), nil); err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewNotFoundError("project")
		}
		return appErrors.NewDatabaseError("delete project", err)
	}

	s.logger.Info("Project soft-deleted", zap.String("projectID", projectID))
	return nil
}

// ListProjects returns one page of live projects ordered by creation time
func (s *Store) ListProjects(ctx context.Context, params common.PaginationParams) ([]*model.Project, int, error) {
	items, err := s.listByPrefix(ctx, model.PrefixProject, nil, params.Ascending())
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list projects", err)
	}

	projects := make([]*model.Project, 0, len(items))
	for _, item := range items {
		var project model.Project
		if err := attributevalue.UnmarshalMap(item, &project); err != nil {
			s.logger.Warn("Failed to unmarshal project item", zap.Error(err))
			continue
		}
		projects = append(projects, &project)
	}

	total := len(projects)
	start, end := common.PageBounds(params.Page, total, params.PageSize)
	return projects[start:end], total, nil
}

// itemKey builds the composite primary key of a table item.
func itemKey(id, typeKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":   &types.AttributeValueMemberS{Value: id},
		"type": &types.AttributeValueMemberS{Value: typeKey},
	}
}

// listByPrefix queries the prefix-time GSI for live items of one entity kind,
// applying any extra filter on top of the soft-delete filter and accumulating
// all server pages.
func (s *Store) listByPrefix(ctx context.Context, prefix string, extra *expression.ConditionBuilder, ascending bool) ([]map[string]types.AttributeValue, error) {
	keyCond := expression.Key("prefix").Equal(expression.Value(prefix))
	filter := expression.Name("deleted").Equal(expression.Value(false))
	if extra != nil {
		filter = filter.And(*extra)
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, err
	}

	return s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		IndexName:                 aws.String(s.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(ascending),
	})
}

// softDeleteItem flips the delete flag on a single live item. Extra
// attribute writes, if any, are folded into the same update.
func (s *Store) softDeleteItem(ctx context.Context, id, typeKey string, extraSets map[string]interface{}) error {
	update := expression.Set(expression.Name("deleted"), expression.Value(true)).
		Set(expression.Name("updateAt"), expression.Value(nowMillis()))
	for name, value := range extraSets {
		update = update.Set(expression.Name(name), expression.Value(value))
	}

	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("deleted").Equal(expression.Value(false)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(id, typeKey),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return err
}
