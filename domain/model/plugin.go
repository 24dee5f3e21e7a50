package model

// Plugin is a transform or enrich extension, keyed by
// (id = pluginID, type = PLUGIN#pluginID) with prefix PLUGIN. Built-in
// plugins are not stored as items; they live inside the BuiltInPlugins
// dictionary entry and are immutable.
type Plugin struct {
	ID              string   `json:"id" dynamodbav:"id"`
	Type            string   `json:"-" dynamodbav:"type"`
	Prefix          string   `json:"-" dynamodbav:"prefix"`
	Name            string   `json:"name" dynamodbav:"name"`
	Description     string   `json:"description" dynamodbav:"description"`
	PluginType      string   `json:"pluginType" dynamodbav:"pluginType"`
	MainFunction    string   `json:"mainFunction" dynamodbav:"mainFunction"`
	JarFile         string   `json:"jarFile" dynamodbav:"jarFile"`
	DependencyFiles []string `json:"dependencyFiles" dynamodbav:"dependencyFiles"`
	BuiltIn         bool     `json:"builtIn" dynamodbav:"builtIn"`
	BindCount       int64    `json:"bindCount" dynamodbav:"bindCount"`
	Deleted         bool     `json:"-" dynamodbav:"deleted"`
	CreateAt        int64    `json:"createAt" dynamodbav:"createAt"`
	UpdateAt        int64    `json:"updateAt" dynamodbav:"updateAt"`
}

// Plugin type discriminators.
const (
	PluginTypeTransform = "Transform"
	PluginTypeEnrich    = "Enrich"
)
