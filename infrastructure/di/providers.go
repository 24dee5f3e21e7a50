package di

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/application/services"
	"clickstream-backend/infrastructure/config"
	"clickstream-backend/infrastructure/messaging/eventbridge"
	"clickstream-backend/infrastructure/observability"
	dynamostore "clickstream-backend/infrastructure/persistence/dynamodb"
	sfnworkflow "clickstream-backend/infrastructure/workflow/sfn"
	"clickstream-backend/interfaces/http/rest"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awssfn "github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Projects     *services.ProjectService
	Apps         *services.ApplicationService
	Pipelines    *services.PipelineService
	Plugins      *services.PluginService
	Dictionaries *services.DictionaryService
	Dedupe       ports.DedupeStore
	Router       *rest.Router
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, instrumented for tracing when enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideSFNClient creates a Step Functions client
func ProvideSFNClient(awsCfg aws.Config) *awssfn.Client {
	return awssfn.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideStore creates the single-table metadata store
func ProvideStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamostore.Store {
	return dynamostore.NewStore(client, cfg.DynamoDBTable, cfg.PrefixIndexName, logger)
}

// ProvideDedupeStore creates the request-id marker store
func ProvideDedupeStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.DedupeStore {
	return dynamostore.NewDedupeStore(client, cfg.DynamoDBTable, cfg.DedupeTTL, logger)
}

// ProvideWorkflowEngine creates the Step Functions backed workflow engine
func ProvideWorkflowEngine(client *awssfn.Client, cfg *config.Config, logger *zap.Logger) ports.WorkflowEngine {
	return sfnworkflow.NewWorkflowManager(client, cfg.StateMachineArn, logger)
}

// ProvideEventPublisher creates the pipeline lifecycle event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetricsPublisher creates the CloudWatch metrics publisher
func ProvideMetricsPublisher(client *awscloudwatch.Client, logger *zap.Logger) ports.MetricsPublisher {
	return observability.NewMetrics(client, logger)
}

// ProvideProjectService creates the project service
func ProvideProjectService(
	projects ports.ProjectStore,
	apps ports.ApplicationStore,
	pipelines ports.PipelineStore,
	logger *zap.Logger,
) *services.ProjectService {
	return services.NewProjectService(projects, apps, pipelines, logger)
}

// ProvideApplicationService creates the application service
func ProvideApplicationService(
	apps ports.ApplicationStore,
	projects ports.ProjectStore,
	logger *zap.Logger,
) *services.ApplicationService {
	return services.NewApplicationService(apps, projects, logger)
}

// ProvidePipelineService creates the pipeline service
func ProvidePipelineService(
	pipelines ports.PipelineStore,
	projects ports.ProjectStore,
	plugins ports.PluginStore,
	engine ports.WorkflowEngine,
	publisher ports.EventPublisher,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *services.PipelineService {
	return services.NewPipelineService(pipelines, projects, plugins, engine, publisher, metrics, logger)
}

// ProvidePluginService creates the plugin service
func ProvidePluginService(
	plugins ports.PluginStore,
	dictionaries ports.DictionaryStore,
	logger *zap.Logger,
) *services.PluginService {
	return services.NewPluginService(plugins, dictionaries, logger)
}

// ProvideDictionaryService creates the dictionary service
func ProvideDictionaryService(dictionaries ports.DictionaryStore, logger *zap.Logger) *services.DictionaryService {
	return services.NewDictionaryService(dictionaries, logger)
}

// ProvideRouter creates the REST router
func ProvideRouter(
	projects *services.ProjectService,
	apps *services.ApplicationService,
	pipelines *services.PipelineService,
	plugins *services.PluginService,
	dictionaries *services.DictionaryService,
	dedupe ports.DedupeStore,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(projects, apps, pipelines, plugins, dictionaries, dedupe, cfg, logger)
}
