package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// sensitiveFields are matched as substrings against header names and JSON
// keys; matching values are masked before anything reaches the log.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"credential",
	"session",
}

// skipPaths are probe and asset routes that would flood the log.
var skipPaths = map[string]bool{
	"/api/v1/health": true,
	"/api/v1/ping":   true,
}

// Request bodies beyond this size are logged truncated.
const maxLoggedBody = 4 << 10

func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/swagger") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			reqID := middleware.GetReqID(r.Context())

			logger.Info("request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"body", maskedRequestBody(r),
			)

			ww := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(ww, r)

			status := ww.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "request completed",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", ww.written,
			)
		})
	}
}

// statusWriter records the status code and byte count. Response bodies are
// never logged; rejections already log through the guard and error bodies
// carry no more than their status explains.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.written += int64(n)
	return n, err
}

// maskedRequestBody reads and restores the request body, returning a
// log-safe rendering with sensitive fields masked.
func maskedRequestBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	bodyBytes, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if len(bodyBytes) == 0 {
		return ""
	}
	if len(bodyBytes) > maxLoggedBody {
		return "[TRUNCATED]"
	}

	var parsed interface{}
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		// Non-JSON payloads are masked wholesale if anything in them
		// looks sensitive.
		if containsSensitive(strings.ToLower(string(bodyBytes))) {
			return "[MASKED]"
		}
		return string(bodyBytes)
	}

	masked, err := json.Marshal(maskSensitive(parsed))
	if err != nil {
		return "[MASKED]"
	}
	return string(masked)
}

func containsSensitive(s string) bool {
	for _, field := range sensitiveFields {
		if strings.Contains(s, field) {
			return true
		}
	}
	return false
}

// maskSensitive walks decoded JSON and replaces values under sensitive keys.
func maskSensitive(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		masked := make(map[string]interface{}, len(v))
		for key, value := range v {
			if containsSensitive(strings.ToLower(key)) {
				masked[key] = "[MASKED]"
				continue
			}
			masked[key] = maskSensitive(value)
		}
		return masked
	case []interface{}:
		masked := make([]interface{}, len(v))
		for i, item := range v {
			masked[i] = maskSensitive(item)
		}
		return masked
	default:
		return v
	}
}
