package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sunday-game-service/internal/http/middleware"
	"github.com/preston-bernstein/sunday-game-service/internal/http/requestutil"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err, slog.Int(logging.FieldStatusCode, status))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorResponse{Error: message, RequestID: requestID(r)}, logger)
}

// requestID prefers the id assigned by the middleware over the raw header.
func requestID(r *http.Request) string {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
