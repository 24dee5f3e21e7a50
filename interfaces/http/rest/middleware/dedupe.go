package middleware

import (
	"net/http"

	"clickstream-backend/application/ports"
	"clickstream-backend/pkg/common"

	"go.uber.org/zap"
)

// RequestIDHeader carries the client-chosen idempotency token.
const RequestIDHeader = "X-Click-Stream-Request-Id"

// Dedupe rejects replayed mutating requests. Clients tag mutations with a
// request id; the first arrival records a short-lived marker and a second
// arrival of the same id fails with 400 instead of re-running the mutation.
// Requests without the header pass through unchecked.
func Dedupe(store ports.DedupeStore, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				next.ServeHTTP(w, r)
				return
			}

			duplicate, err := store.MarkRequestID(r.Context(), requestID)
			if err != nil {
				// The marker is best effort; losing it only loses replay
				// protection, not the request.
				logger.Warn("Failed to record request id marker",
					zap.Error(err),
					zap.String("requestID", requestID),
				)
				next.ServeHTTP(w, r)
				return
			}
			if duplicate {
				common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest,
					"duplicate request id: this request was already processed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
