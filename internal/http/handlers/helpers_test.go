package handlers

import (
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/logo-scatter-service/internal/auth"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/middleware"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/metrics"
	"github.com/preston-bernstein/logo-scatter-service/internal/session"
	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

// testApp mounts the page handlers behind the session middleware and keeps
// the session cookie between requests like a browser would.
type testApp struct {
	h        *Handler
	store    *session.MemoryStore
	recorder *metrics.Recorder
	mux      http.Handler
	cookies  []*http.Cookie
}

func newTestApp(t *testing.T, users map[string]string, mutate func(*Deps)) *testApp {
	t.Helper()
	logoDir := t.TempDir()
	testutil.WritePNG(t, logoDir, "universidad_de_chile.png", 50, 50, color.NRGBA{B: 255, A: 255})
	catalog := logos.NewCatalog(logoDir)
	if err := catalog.Load(); err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	gate := auth.NewGate(auth.NewStore(users), 5)
	rec := metrics.NewRecorder()
	deps := Deps{
		Gate:        gate,
		Catalog:     catalog,
		PreviewRows: 10,
		Recorder:    rec,
	}
	if mutate != nil {
		mutate(&deps)
	}
	h := NewHandler(deps)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /upload", h.Upload)
	mux.HandleFunc("GET /plot.png", h.Plot)
	mux.HandleFunc("GET /sidebar", h.Sidebar)
	mux.HandleFunc("GET /api/logos", h.Logos)

	store := session.NewMemoryStore(deps.Gate.NewAccess, 0)
	return &testApp{
		h:        h,
		store:    store,
		recorder: rec,
		mux:      middleware.Sessions(store, false)(mux),
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rr := testutil.ServeRequest(a.mux, req)
	if set := rr.Result().Cookies(); len(set) > 0 {
		a.cookies = set
	}
	return rr
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) upload(t *testing.T, fileName string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(testutil.UploadRequest(t, "/upload", "file", fileName, data))
}

func (a *testApp) uploadSample(t *testing.T) {
	t.Helper()
	data := testutil.WorkbookBytes(t, map[string][][]any{
		"Tabla":  testutil.SampleSheetRows(),
		"Vacía": {{"Equipo"}, {"Solo"}},
	}, "Tabla", "Vacía")
	rr := a.upload(t, "liga.xlsx", data)
	testutil.AssertStatus(t, rr, http.StatusSeeOther)
}
