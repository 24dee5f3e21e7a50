package services

import (
	"context"

	"clickstream-backend/application/ports"
	"clickstream-backend/domain/model"

	"go.uber.org/zap"
)

// DictionaryService exposes read access to named configuration blobs
type DictionaryService struct {
	dictionaries ports.DictionaryStore
	logger       *zap.Logger
}

// NewDictionaryService creates a new dictionary service
func NewDictionaryService(dictionaries ports.DictionaryStore, logger *zap.Logger) *DictionaryService {
	return &DictionaryService{
		dictionaries: dictionaries,
		logger:       logger,
	}
}

// GetDictionary retrieves a dictionary entry by name
func (s *DictionaryService) GetDictionary(ctx context.Context, name string) (*model.Dictionary, error) {
	return s.dictionaries.GetDictionary(ctx, name)
}

// ListDictionaries returns every dictionary entry
func (s *DictionaryService) ListDictionaries(ctx context.Context) ([]*model.Dictionary, error) {
	return s.dictionaries.ListDictionaries(ctx)
}
