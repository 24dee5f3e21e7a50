//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/infrastructure/config"
	dynamostore "clickstream-backend/infrastructure/persistence/dynamodb"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideSFNClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideStore,
	ProvideDedupeStore,
	ProvideWorkflowEngine,
	ProvideEventPublisher,
	ProvideMetricsPublisher,
	ProvideProjectService,
	ProvideApplicationService,
	ProvidePipelineService,
	ProvidePluginService,
	ProvideDictionaryService,
	ProvideRouter,
	wire.Bind(new(ports.ProjectStore), new(*dynamostore.Store)),
	wire.Bind(new(ports.ApplicationStore), new(*dynamostore.Store)),
	wire.Bind(new(ports.PipelineStore), new(*dynamostore.Store)),
	wire.Bind(new(ports.PluginStore), new(*dynamostore.Store)),
	wire.Bind(new(ports.DictionaryStore), new(*dynamostore.Store)),
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
