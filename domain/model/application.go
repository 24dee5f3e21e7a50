package model

// Application is a registered app under a project, keyed by
// (id = projectID, type = APP#appID) with prefix APP.
type Application struct {
	ProjectID      string `json:"projectId" dynamodbav:"id"`
	Type           string `json:"-" dynamodbav:"type"`
	Prefix         string `json:"-" dynamodbav:"prefix"`
	AppID          string `json:"appId" dynamodbav:"appId"`
	Name           string `json:"name" dynamodbav:"name"`
	Description    string `json:"description" dynamodbav:"description"`
	AndroidPackage string `json:"androidPackage" dynamodbav:"androidPackage"`
	IOSBundleID    string `json:"iosBundleId" dynamodbav:"iosBundleId"`
	IOSAppStoreID  string `json:"iosAppStoreId" dynamodbav:"iosAppStoreId"`
	Deleted        bool   `json:"-" dynamodbav:"deleted"`
	CreateAt       int64  `json:"createAt" dynamodbav:"createAt"`
	UpdateAt       int64  `json:"updateAt" dynamodbav:"updateAt"`
}
