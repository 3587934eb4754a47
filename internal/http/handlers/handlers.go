package handlers

import (
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/preston-bernstein/logo-scatter-service/internal/auth"
	"github.com/preston-bernstein/logo-scatter-service/internal/metrics"
	"github.com/preston-bernstein/logo-scatter-service/internal/plot"
	"github.com/preston-bernstein/logo-scatter-service/internal/poller"
)

const defaultMaxUpload = 10 << 20

// Catalog is the logo lookup the handlers need.
type Catalog interface {
	plot.LogoSource
	Keys() []string
}

// Deps groups everything the page handlers read from.
type Deps struct {
	Gate         *auth.Gate
	Catalog      Catalog
	Plot         plot.Config
	PreviewRows  int
	MaxUpload    int64
	SidebarImage string
	Recorder     *metrics.Recorder
	Logger       *slog.Logger
	StatusFn     func() poller.Status
}

// Handler serves the pages, the chart and the JSON endpoints.
type Handler struct {
	gate        *auth.Gate
	catalog     Catalog
	plotCfg     plot.Config
	previewRows int
	maxUpload   int64
	sidebar     string
	recorder    *metrics.Recorder
	logger      *slog.Logger
	statusFn    func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(d Deps) *Handler {
	if d.Gate == nil {
		d.Gate = auth.NewGate(nil, 0)
	}
	if d.MaxUpload <= 0 {
		d.MaxUpload = defaultMaxUpload
	}
	sidebar := d.SidebarImage
	if sidebar != "" {
		if info, err := os.Stat(sidebar); err != nil || info.IsDir() {
			sidebar = ""
		}
	}
	return &Handler{
		gate:        d.Gate,
		catalog:     d.Catalog,
		plotCfg:     d.Plot,
		previewRows: d.PreviewRows,
		maxUpload:   d.MaxUpload,
		sidebar:     sidebar,
		recorder:    d.Recorder,
		logger:      d.Logger,
		statusFn:    d.StatusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeJSONError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "logos": status.LogoCount}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeJSONError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

type logosResponse struct {
	Logos []string `json:"logos"`
	Count int      `json:"count"`
}

// Logos lists the catalog keys a category can match.
func (h *Handler) Logos(w nethttp.ResponseWriter, r *nethttp.Request) {
	keys := []string{}
	if h.catalog != nil {
		keys = append(keys, h.catalog.Keys()...)
	}
	writeJSON(w, nethttp.StatusOK, logosResponse{Logos: keys, Count: len(keys)}, loggerFromContext(r, h.logger))
}

// Sidebar serves the configured sidebar image.
func (h *Handler) Sidebar(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.sidebar == "" {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}
	nethttp.ServeFile(w, r, h.sidebar)
}

// NotFound renders the 404 page or JSON body.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders the 405 page or JSON body.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
