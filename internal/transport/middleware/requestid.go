package middleware

import (
	"net/http"

	"github.com/Dijital-human/yusu-admin/pkg/logger"
	"github.com/google/uuid"
)

// RequestID assigns each request a trace id, reusing the caller's
// X-Trace-ID when present, and seeds the context logger with it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
