package handlers

import (
	"context"
	"net/http"

	"clickstream-backend/domain/model"
	"clickstream-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DictionaryService is the application surface the dictionary handler drives
type DictionaryService interface {
	GetDictionary(ctx context.Context, name string) (*model.Dictionary, error)
	ListDictionaries(ctx context.Context) ([]*model.Dictionary, error)
}

// DictionaryHandler handles dictionary lookups
type DictionaryHandler struct {
	service DictionaryService
	logger  *zap.Logger
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(service DictionaryService, logger *zap.Logger) *DictionaryHandler {
	return &DictionaryHandler{service: service, logger: logger}
}

// GetDictionary handles GET /dictionaries/{name}
func (h *DictionaryHandler) GetDictionary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	dict, err := h.service.GetDictionary(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, dict)
}

// ListDictionaries handles GET /dictionaries
func (h *DictionaryHandler) ListDictionaries(w http.ResponseWriter, r *http.Request) {
	dicts, err := h.service.ListDictionaries(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, dicts)
}
