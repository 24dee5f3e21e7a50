package middleware

import (
	"net/http"

	"clickstream-backend/pkg/observability"
)

// Tracing opens a trace segment around every request
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method)
			defer seg.Close(nil)

			tracer.AddAnnotation(ctx, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
