package model

// Project is the top-level tenant entity. The item is keyed by
// (id = projectID, type = METADATA#projectID) with prefix METADATA.
type Project struct {
	ID          string `json:"id" dynamodbav:"id"`
	Type        string `json:"-" dynamodbav:"type"`
	Prefix      string `json:"-" dynamodbav:"prefix"`
	Name        string `json:"name" dynamodbav:"name"`
	Description string `json:"description" dynamodbav:"description"`
	Emails      string `json:"emails" dynamodbav:"emails"`
	Platform    string `json:"platform" dynamodbav:"platform"`
	Region      string `json:"region" dynamodbav:"region"`
	Environment string `json:"environment" dynamodbav:"environment"`
	Status      string `json:"status" dynamodbav:"status"`
	Deleted     bool   `json:"-" dynamodbav:"deleted"`
	CreateAt    int64  `json:"createAt" dynamodbav:"createAt"`
	UpdateAt    int64  `json:"updateAt" dynamodbav:"updateAt"`
}
