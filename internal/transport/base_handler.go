package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ntsfreight/client-portal/pkg/logger"
)

// BaseHandler carries the helpers every feature handler embeds.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error body matching the guard's rejection shape, so
// clients see one error format whether the guard or a handler denied them.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"success":    false,
		"error":      message,
		"statusCode": status,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// ExtractTokenFromHeader returns the bearer token from the Authorization
// header, or empty when the header is absent or not a bearer scheme.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	const prefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return authHeader[len(prefix):]
}
