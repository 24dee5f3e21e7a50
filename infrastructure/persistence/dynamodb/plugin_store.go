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
	"go.uber.org/zap"
)

// CreatePlugin persists a new user plugin with a zero bind count
func (s *Store) CreatePlugin(ctx context.Context, plugin *model.Plugin) error {
	now := nowMillis()
	plugin.Type = model.PluginTypeKey(plugin.ID)
	plugin.Prefix = model.PrefixPlugin
	plugin.BuiltIn = false
	plugin.BindCount = 0
	plugin.Deleted = false
	plugin.CreateAt = now
	plugin.UpdateAt = now

	av, err := attributevalue.MarshalMap(plugin)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal plugin")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("plugin already exists")
		}
		return appErrors.NewDatabaseError("create plugin", err)
	}

	s.logger.Info("Plugin created", zap.String("pluginID", plugin.ID))
	return nil
}

// GetPlugin retrieves a live stored plugin item. Built-in plugins live in the
// dictionary catalog, not as items, so they are not resolvable here.
func (s *Store) GetPlugin(ctx context.Context, pluginID string) (*model.Plugin, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(pluginID, model.PluginTypeKey(pluginID)),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get plugin", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("plugin")
	}

	var plugin model.Plugin
	if err := attributevalue.UnmarshalMap(out.Item, &plugin); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal plugin")
	}
	if plugin.Deleted {
		return nil, appErrors.NewNotFoundError("plugin")
	}

	return &plugin, nil
}

// UpdatePlugin folds the non-nil patch fields into one update, conditioned on
// the plugin being unbound. A nonzero bind count surfaces as Conflict.
func (s *Store) UpdatePlugin(ctx context.Context, patch *ports.PluginPatch) error {
	update := expression.Set(expression.Name("updateAt"), expression.Value(nowMillis()))
	if patch.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*patch.Description))
	}
	if patch.MainFunction != nil {
		update = update.Set(expression.Name("mainFunction"), expression.Value(*patch.MainFunction))
	}
	if patch.JarFile != nil {
		update = update.Set(expression.Name("jarFile"), expression.Value(*patch.JarFile))
	}
	if patch.DependencyFiles != nil {
		update = update.Set(expression.Name("dependencyFiles"), expression.Value(*patch.DependencyFiles))
	}

	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("deleted").Equal(expression.Value(false))).
		And(expression.Name("bindCount").Equal(expression.Value(0)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build plugin update expression")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(patch.PluginID, model.PluginTypeKey(patch.PluginID)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("plugin is bound by pipelines and cannot be modified")
		}
		return appErrors.NewDatabaseError("update plugin", err)
	}

	return nil
}

// DeletePlugin soft-deletes an unbound plugin; Conflict if still bound
func (s *Store) DeletePlugin(ctx context.Context, pluginID string) error {
	update := expression.Set(expression.Name("deleted"), expression.Value(true)).
		Set(expression.Name("updateAt"), expression.Value(nowMillis()))

	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("deleted").Equal(expression.Value(false))).
		And(expression.Name("bindCount").Equal(expression.Value(0)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return appErrors.Wrap(err, "failed to build plugin delete expression")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(pluginID, model.PluginTypeKey(pluginID)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return appErrors.NewConflictError("plugin is bound by pipelines and cannot be deleted")
		}
		return appErrors.NewDatabaseError("delete plugin", err)
	}

	s.logger.Info("Plugin soft-deleted", zap.String("pluginID", pluginID))
	return nil
}

// ListPlugins merges the built-in catalog from the dictionary with stored
// plugin items, built-ins first, then pages over the merged set.
func (s *Store) ListPlugins(ctx context.Context, pluginType string, params common.PaginationParams) ([]*model.Plugin, int, error) {
	plugins, err := s.builtInPlugins(ctx, pluginType)
	if err != nil {
		return nil, 0, err
	}

	var scope *expression.ConditionBuilder
	if pluginType != "" {
		cond := expression.Name("pluginType").Equal(expression.Value(pluginType))
		scope = &cond
	}

	items, err := s.listByPrefix(ctx, model.PrefixPlugin, scope, params.Ascending())
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list plugins", err)
	}

	for _, item := range items {
		var plugin model.Plugin
		if err := attributevalue.UnmarshalMap(item, &plugin); err != nil {
			s.logger.Warn("Failed to unmarshal plugin item", zap.Error(err))
			continue
		}
		plugins = append(plugins, &plugin)
	}

	total := len(plugins)
	start, end := common.PageBounds(params.Page, total, params.PageSize)
	return plugins[start:end], total, nil
}

// builtInPlugins reads the built-in catalog out of the dictionary blob. A
// missing catalog entry is not an error.
func (s *Store) builtInPlugins(ctx context.Context, pluginType string) ([]*model.Plugin, error) {
	dict, err := s.GetDictionary(ctx, model.DictionaryBuiltInPlugins)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	catalog, err := dict.BuiltInPlugins()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to decode built-in plugin catalog")
	}

	plugins := make([]*model.Plugin, 0, len(catalog))
	for _, p := range catalog {
		if pluginType != "" && p.PluginType != pluginType {
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// BindPlugins adjusts the bind count of each stored plugin by delta. Built-in
// ids have no item and are skipped via the existence condition.
func (s *Store) BindPlugins(ctx context.Context, pluginIDs []string, delta int64) error {
	for _, pluginID := range pluginIDs {
		update := expression.Add(expression.Name("bindCount"), expression.Value(delta))
		cond := expression.AttributeExists(expression.Name("id"))

		expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
		if err != nil {
			return appErrors.Wrap(err, "failed to build bind expression")
		}

		_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(s.tableName),
			Key:                       itemKey(pluginID, model.PluginTypeKey(pluginID)),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		if err != nil {
			if isConditionalCheckFailed(err) {
				continue
			}
			return appErrors.NewDatabaseError("bind plugin", err)
		}
	}
	return nil
}
