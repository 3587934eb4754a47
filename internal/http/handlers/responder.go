package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/logo-scatter-service/internal/http/middleware"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/requestutil"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/views"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

// writeError answers API callers with JSON and browsers with the error page.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	if requestutil.WantsJSON(r) {
		writeJSONError(w, r, status, message, logger)
		return
	}
	views.Render(w, status, views.ErrorPage(status, message, requestID(r)))
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := map[string]string{"error": message}
	if reqID := requestID(r); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	return reqID
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
