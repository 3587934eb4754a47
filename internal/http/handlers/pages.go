package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"slices"

	"github.com/preston-bernstein/logo-scatter-service/internal/auth"
	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/middleware"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/requestutil"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/views"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/session"
	"github.com/preston-bernstein/logo-scatter-service/internal/spreadsheet"
)

// Home shows the login form to visitors who still have to pass the gate and
// the upload/selection/chart page to everyone else.
func (h *Handler) Home(w nethttp.ResponseWriter, r *nethttp.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if !sess.Access.Authenticated() {
		sess.Access.Prompt()
		views.Render(w, nethttp.StatusOK, views.LoginPage(""))
		return
	}
	h.renderHome(w, sess, r.URL.Query(), nethttp.StatusOK, "")
}

// Login submits the gate form.
func (h *Handler) Login(w nethttp.ResponseWriter, r *nethttp.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if !h.gate.Enabled() || sess.Access.Authenticated() {
		nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
		return
	}

	logger := loggerFromContext(r, h.logger)
	user := r.PostFormValue("username")
	err := h.gate.Submit(sess.Access, requestutil.RemoteHost(r), user, r.PostFormValue("password"))
	h.recorder.RecordLoginAttempt(err == nil)
	if err == nil {
		middleware.RenewSession(w, r)
		logging.Info(logger, "login succeeded", slog.String(logging.FieldUser, user))
		nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
		return
	}

	status := nethttp.StatusUnauthorized
	if errors.Is(err, auth.ErrTooManyAttempts) {
		status = nethttp.StatusTooManyRequests
	}
	logging.Warn(logger, "login failed", slog.String(logging.FieldUser, user), slog.Any("err", err))
	views.Render(w, status, views.LoginPage(err.Error()))
}

// Upload parses the posted workbook and keeps it in the session.
func (h *Handler) Upload(w nethttp.ResponseWriter, r *nethttp.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	r.Body = nethttp.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *nethttp.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderHome(w, sess, nil, nethttp.StatusRequestEntityTooLarge, "The file is too large.")
			return
		}
		h.renderHome(w, sess, nil, nethttp.StatusBadRequest, "Choose an .xlsx file to upload.")
		return
	}
	defer file.Close()

	wb, err := spreadsheet.Read(header.Filename, file)
	if err != nil {
		logging.Warn(logger, "upload rejected", slog.String(logging.FieldFile, header.Filename), slog.Any("err", err))
		msg := "The file could not be read as a spreadsheet."
		if errors.Is(err, spreadsheet.ErrNotXLSX) {
			msg = "Only .xlsx files are supported."
		}
		h.renderHome(w, sess, nil, nethttp.StatusBadRequest, msg)
		return
	}

	sess.SetWorkbook(wb)
	middleware.KeepSession(w, r)
	logging.Info(logger, "workbook uploaded",
		slog.String(logging.FieldFile, wb.FileName),
		slog.Int(logging.FieldCount, len(wb.SheetNames)),
	)
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

func (h *Handler) renderHome(w nethttp.ResponseWriter, sess *session.Session, q url.Values, status int, errMsg string) {
	wb := sess.Workbook()
	views.Render(w, status, views.HomePage(views.HomeData{
		Workbook:    wb,
		Selection:   defaultSelection(wb, q),
		PreviewRows: h.previewRows,
		ShowSidebar: h.sidebar != "",
		Error:       errMsg,
	}))
}

func (h *Handler) session(w nethttp.ResponseWriter, r *nethttp.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		logging.Error(loggerFromContext(r, h.logger), "request without session", nil)
		writeError(w, r, nethttp.StatusInternalServerError, "session unavailable", h.logger)
		return nil, false
	}
	return sess, true
}

// defaultSelection fills anything missing or stale in q: the first sheet, the
// first two selectable columns and axis names on unless the form was
// submitted with the box cleared.
func defaultSelection(wb *dataset.Workbook, q url.Values) views.Selection {
	if wb == nil || len(wb.SheetNames) == 0 {
		return views.Selection{}
	}
	sel := views.Selection{
		Sheet:      q.Get("sheet"),
		ShowLabels: requestutil.Flag(q, "labels", !q.Has("submitted")),
	}
	sheet, err := wb.Sheet(sel.Sheet)
	if err != nil {
		sel.Sheet = wb.SheetNames[0]
		sheet, _ = wb.Sheet(sel.Sheet)
	}

	columns := sheet.SelectableColumns()
	sel.X = pick(columns, q.Get("x"), 0)
	sel.Y = pick(columns, q.Get("y"), 1)
	return sel
}

func pick(columns []string, want string, def int) string {
	if slices.Contains(columns, want) {
		return want
	}
	if len(columns) == 0 {
		return ""
	}
	return columns[min(def, len(columns)-1)]
}
