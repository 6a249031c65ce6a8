package middleware

import (
	"net/http"

	"github.com/ntsfreight/client-portal/pkg/logger"

	"github.com/google/uuid"
)

// RequestID honors an inbound X-Trace-ID so the portal frontend can
// correlate its own logs, minting one otherwise. The id rides the logging
// context and is echoed on the response.
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
