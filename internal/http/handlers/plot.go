package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"slices"
	"time"

	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/requestutil"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/plot"
)

var errNoWorkbook = errors.New("no workbook uploaded")

// Plot renders the chart selected by the sheet, x, y and labels parameters.
// download=1 turns the response into an attachment.
func (h *Handler) Plot(w nethttp.ResponseWriter, r *nethttp.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()

	sheet, cfg, err := h.plotRequest(sess.Workbook(), q)
	if err != nil {
		logging.Warn(logger, "plot request rejected", slog.Any("err", err))
		writeError(w, r, statusFor(err), err.Error(), h.logger)
		return
	}

	start := time.Now()
	p, err := plot.Build(sheet, cfg, h.catalog)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error(), h.logger)
		return
	}
	out, err := plot.Render(p, h.catalog)
	duration := time.Since(start)
	h.recorder.RecordPlotRender(p.LogoCount(), p.FallbackCount(), p.Skipped, duration, err)
	if err != nil {
		logging.Error(logger, "plot render failed", err, slog.String(logging.FieldSheet, sheet.Name))
		writeError(w, r, nethttp.StatusInternalServerError, "failed to render plot", h.logger)
		return
	}

	logging.Info(logger, "plot rendered",
		slog.String(logging.FieldSheet, sheet.Name),
		slog.Int("logos", p.LogoCount()),
		slog.Int("fallbacks", p.FallbackCount()),
		slog.Int("skipped", p.Skipped),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if requestutil.Flag(q, "download", false) {
		w.Header().Set("Content-Disposition", plot.ContentDisposition(cfg.XColumn, cfg.YColumn))
	}
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(out.PNG); err != nil {
		logging.Warn(logger, "plot write failed", slog.Any("err", err))
	}
}

// plotRequest resolves the query strictly; unlike the page, nothing is
// silently substituted.
func (h *Handler) plotRequest(wb *dataset.Workbook, q url.Values) (*dataset.Sheet, plot.Config, error) {
	cfg := h.plotCfg
	if wb == nil || len(wb.SheetNames) == 0 {
		return nil, cfg, errNoWorkbook
	}
	name := q.Get("sheet")
	if name == "" {
		name = wb.SheetNames[0]
	}
	sheet, err := wb.Sheet(name)
	if err != nil {
		return nil, cfg, err
	}

	columns := sheet.SelectableColumns()
	for _, col := range []string{q.Get("x"), q.Get("y")} {
		if !slices.Contains(columns, col) {
			return nil, cfg, fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, col)
		}
	}
	cfg.XColumn = q.Get("x")
	cfg.YColumn = q.Get("y")
	cfg.ShowAxisNames = requestutil.Flag(q, "labels", true)
	return sheet, cfg, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoWorkbook):
		return nethttp.StatusNotFound
	case errors.Is(err, dataset.ErrUnknownSheet), errors.Is(err, dataset.ErrUnknownColumn):
		return nethttp.StatusBadRequest
	default:
		return nethttp.StatusInternalServerError
	}
}
