package dynamodb

import (
	"context"

	"clickstream-backend/domain/model"
	appErrors "clickstream-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// GetDictionary retrieves a named configuration blob
func (s *Store) GetDictionary(ctx context.Context, name string) (*model.Dictionary, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(name, model.DictionaryTypeKey(name)),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get dictionary", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("dictionary")
	}

	var dict model.Dictionary
	if err := attributevalue.UnmarshalMap(out.Item, &dict); err != nil {
		return nil, appErrors.Wrap(err, "failed to unmarshal dictionary")
	}

	return &dict, nil
}

// PutDictionary creates or replaces a dictionary entry
func (s *Store) PutDictionary(ctx context.Context, dict *model.Dictionary) error {
	dict.Type = model.DictionaryTypeKey(dict.Name)
	dict.Prefix = model.PrefixDictionary

	av, err := attributevalue.MarshalMap(dict)
	if err != nil {
		return appErrors.Wrap(err, "failed to marshal dictionary")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return appErrors.NewDatabaseError("put dictionary", err)
	}

	s.logger.Info("Dictionary entry stored", zap.String("name", dict.Name))
	return nil
}

// ListDictionaries returns every dictionary entry. Dictionary items carry no
// insertion-time attribute and therefore sit outside the prefix-time GSI, so
// this is a filtered scan.
func (s *Store) ListDictionaries(ctx context.Context) ([]*model.Dictionary, error) {
	filter := expression.Name("prefix").Equal(expression.Value(model.PrefixDictionary))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to build dictionary filter")
	}

	items, err := s.scanAll(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(s.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("list dictionaries", err)
	}

	dicts := make([]*model.Dictionary, 0, len(items))
	for _, item := range items {
		var dict model.Dictionary
		if err := attributevalue.UnmarshalMap(item, &dict); err != nil {
			s.logger.Warn("Failed to unmarshal dictionary item", zap.Error(err))
			continue
		}
		dicts = append(dicts, &dict)
	}

	return dicts, nil
}
