package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"os"

	"github.com/preston-bernstein/logo-scatter-service/internal/http/requestutil"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
)

// Refresher re-runs logo normalization and reloads the catalog.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes operator-only endpoints.
type AdminHandler struct {
	refresher Refresher
	catalog   Catalog
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, catalog Catalog, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		catalog:   catalog,
		token:     token,
		logger:    logger,
	}
}

// RefreshLogos normalizes the logo source directory again so new files can be
// dropped in without a restart. Guarded by ADMIN_TOKEN; returns 401 if
// missing or invalid.
func (h *AdminHandler) RefreshLogos(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeJSONError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "logo refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Error(logger, "admin logo refresh failed", err)
		writeJSONError(w, r, http.StatusInternalServerError, "failed to refresh logos", logger)
		return
	}

	count := 0
	if h.catalog != nil {
		count = len(h.catalog.Keys())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"logos":  count,
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin logo refresh complete", slog.Int(logging.FieldCount, count))
}

// AdminTokenFromEnv reads ADMIN_TOKEN (optional).
func AdminTokenFromEnv() string {
	return os.Getenv("ADMIN_TOKEN")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := []byte(r.Header.Get("Authorization"))
	want := []byte("Bearer " + h.token)
	return subtle.ConstantTimeCompare(got, want) == 1
}
