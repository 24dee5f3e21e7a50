package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubDedupeStore struct {
	seen map[string]bool
	err  error
}

func (s *stubDedupeStore) MarkRequestID(ctx context.Context, requestID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.seen[requestID] {
		return true, nil
	}
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	s.seen[requestID] = true
	return false, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDedupe_FirstRequestPasses(t *testing.T) {
	handler := Dedupe(&stubDedupeStore{}, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/pipelines", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDedupe_ReplayRejected(t *testing.T) {
	store := &stubDedupeStore{}
	handler := Dedupe(store, zap.NewNop())(okHandler())

	for i, want := range []int{http.StatusOK, http.StatusBadRequest} {
		req := httptest.NewRequest(http.MethodPost, "/pipelines", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}

func TestDedupe_ReadsSkipped(t *testing.T) {
	store := &stubDedupeStore{seen: map[string]bool{"req-1": true}}
	handler := Dedupe(store, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/pipelines", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDedupe_MissingHeaderSkipped(t *testing.T) {
	handler := Dedupe(&stubDedupeStore{}, zap.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pipelines", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDedupe_MarkerFailureDoesNotBlock(t *testing.T) {
	handler := Dedupe(&stubDedupeStore{err: errors.New("table unavailable")}, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodDelete, "/pipelines/pipe-1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
