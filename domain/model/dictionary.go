package model

import "encoding/json"

// Dictionary is a named configuration blob, keyed by
// (id = name, type = DICTIONARY#name) with prefix DICTIONARY. Unlike the
// other entities it has no soft-delete flag; entries are replaced wholesale.
type Dictionary struct {
	Name   string `json:"name" dynamodbav:"id"`
	Type   string `json:"-" dynamodbav:"type"`
	Prefix string `json:"-" dynamodbav:"prefix"`
	Data   string `json:"data" dynamodbav:"data"`
}

// BuiltInPlugins decodes the built-in plugin catalog out of a dictionary
// entry's data blob.
func (d *Dictionary) BuiltInPlugins() ([]*Plugin, error) {
	if d == nil || d.Data == "" {
		return nil, nil
	}
	var plugins []*Plugin
	if err := json.Unmarshal([]byte(d.Data), &plugins); err != nil {
		return nil, err
	}
	for _, p := range plugins {
		p.BuiltIn = true
	}
	return plugins, nil
}
