package model

import (
	"fmt"
	"strings"
)

// Entity kind discriminators stored in the `prefix` attribute and used as the
// partition key of the prefix-time GSI.
const (
	PrefixProject    = "METADATA"
	PrefixApp        = "APP"
	PrefixPipeline   = "PIPELINE"
	PrefixPlugin     = "PLUGIN"
	PrefixDictionary = "DICTIONARY"
	PrefixRequestID  = "REQUESTID"
)

// VersionLatest is the sort-key suffix of the single mutable pipeline record.
const VersionLatest = "latest"

// DictionaryBuiltInPlugins is the dictionary entry holding the built-in
// plugin catalog as a JSON blob.
const DictionaryBuiltInPlugins = "BuiltInPlugins"

// ProjectTypeKey builds the sort key for a project metadata item.
func ProjectTypeKey(projectID string) string {
	return fmt.Sprintf("%s#%s", PrefixProject, projectID)
}

// AppTypeKey builds the sort key for an application item under a project.
func AppTypeKey(appID string) string {
	return fmt.Sprintf("%s#%s", PrefixApp, appID)
}

// PipelineTypeKey builds the sort key for a pipeline record. The version tag
// is either VersionLatest or an immutable version token.
func PipelineTypeKey(pipelineID, versionTag string) string {
	return fmt.Sprintf("%s#%s#%s", PrefixPipeline, pipelineID, versionTag)
}

// PluginTypeKey builds the sort key for a plugin item.
func PluginTypeKey(pluginID string) string {
	return fmt.Sprintf("%s#%s", PrefixPlugin, pluginID)
}

// DictionaryTypeKey builds the sort key for a named dictionary entry.
func DictionaryTypeKey(name string) string {
	return fmt.Sprintf("%s#%s", PrefixDictionary, name)
}

// RequestIDTypeKey builds the sort key for a request-id dedupe marker.
func RequestIDTypeKey(requestID string) string {
	return fmt.Sprintf("%s#%s", PrefixRequestID, requestID)
}

// PipelineVersionTag extracts the version tag from a pipeline sort key,
// returning "" if the key is not a pipeline key.
func PipelineVersionTag(typeKey string) string {
	parts := strings.Split(typeKey, "#")
	if len(parts) != 3 || parts[0] != PrefixPipeline {
		return ""
	}
	return parts[2]
}
