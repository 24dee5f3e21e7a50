package model

// NetworkConfig describes the VPC placement of a pipeline's resources.
type NetworkConfig struct {
	VpcID            string   `json:"vpcId" dynamodbav:"vpcId"`
	PublicSubnetIDs  []string `json:"publicSubnetIds" dynamodbav:"publicSubnetIds"`
	PrivateSubnetIDs []string `json:"privateSubnetIds" dynamodbav:"privateSubnetIds"`
}

// BucketLocation points at the S3 destination for pipeline data.
type BucketLocation struct {
	Name   string `json:"name" dynamodbav:"name"`
	Prefix string `json:"prefix" dynamodbav:"prefix"`
}

// IngestionConfig is the ingestion server sub-configuration.
type IngestionConfig struct {
	Protocol      string `json:"protocol" dynamodbav:"protocol"`
	Domain        string `json:"domain" dynamodbav:"domain"`
	ServerMin     int32  `json:"serverMin" dynamodbav:"serverMin"`
	ServerMax     int32  `json:"serverMax" dynamodbav:"serverMax"`
	WarmPoolSize  int32  `json:"warmPoolSize" dynamodbav:"warmPoolSize"`
	SinkType      string `json:"sinkType" dynamodbav:"sinkType"`
	SinkBatchSize int32  `json:"sinkBatchSize" dynamodbav:"sinkBatchSize"`
}

// ETLConfig is the transform/enrich sub-configuration. Plugin IDs reference
// plugin items whose bind counts track this usage.
type ETLConfig struct {
	DataFreshnessInHour int32    `json:"dataFreshnessInHour" dynamodbav:"dataFreshnessInHour"`
	ScheduleExpression  string   `json:"scheduleExpression" dynamodbav:"scheduleExpression"`
	SourceFormat        string   `json:"sourceFormat" dynamodbav:"sourceFormat"`
	TransformPluginID   string   `json:"transformPluginId" dynamodbav:"transformPluginId"`
	EnrichPluginIDs     []string `json:"enrichPluginIds" dynamodbav:"enrichPluginIds"`
}

// ReportConfig is the analytics/reporting sub-configuration.
type ReportConfig struct {
	DashboardEnabled bool   `json:"dashboardEnabled" dynamodbav:"dashboardEnabled"`
	UserArn          string `json:"userArn" dynamodbav:"userArn"`
	Namespace        string `json:"namespace" dynamodbav:"namespace"`
}

// Pipeline is a versioned entity. The mutable current state lives at sort key
// PIPELINE#pipelineID#latest; every update snapshots the prior state under an
// immutable version-token sort key.
type Pipeline struct {
	ProjectID     string           `json:"projectId" dynamodbav:"id"`
	Type          string           `json:"-" dynamodbav:"type"`
	Prefix        string           `json:"-" dynamodbav:"prefix"`
	PipelineID    string           `json:"pipelineId" dynamodbav:"pipelineId"`
	Name          string           `json:"name" dynamodbav:"name"`
	Description   string           `json:"description" dynamodbav:"description"`
	Region        string           `json:"region" dynamodbav:"region"`
	VersionTag    string           `json:"versionTag" dynamodbav:"versionTag"`
	Version       string           `json:"version" dynamodbav:"version"`
	Network       NetworkConfig    `json:"network" dynamodbav:"network"`
	Bucket        BucketLocation   `json:"bucket" dynamodbav:"bucket"`
	Ingestion     *IngestionConfig `json:"ingestion,omitempty" dynamodbav:"ingestion,omitempty"`
	ETL           *ETLConfig       `json:"etl,omitempty" dynamodbav:"etl,omitempty"`
	Report        *ReportConfig    `json:"report,omitempty" dynamodbav:"report,omitempty"`
	Workflow      string           `json:"workflow,omitempty" dynamodbav:"workflow"`
	ExecutionName string           `json:"executionName" dynamodbav:"executionName"`
	ExecutionArn  string           `json:"executionArn" dynamodbav:"executionArn"`
	Status        PipelineStatus   `json:"status" dynamodbav:"status"`
	Deleted       bool             `json:"-" dynamodbav:"deleted"`
	CreateAt      int64            `json:"createAt" dynamodbav:"createAt"`
	UpdateAt      int64            `json:"updateAt" dynamodbav:"updateAt"`
}

// PluginIDs returns the non-empty plugin references of the ETL config.
func (p *Pipeline) PluginIDs() []string {
	if p.ETL == nil {
		return nil
	}
	ids := make([]string, 0, len(p.ETL.EnrichPluginIDs)+1)
	if p.ETL.TransformPluginID != "" {
		ids = append(ids, p.ETL.TransformPluginID)
	}
	for _, id := range p.ETL.EnrichPluginIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
