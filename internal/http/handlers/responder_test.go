package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/logos", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteErrorRendersHTMLForBrowsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plot.png", nil)
	req.Header.Set("X-Request-ID", "header-id")
	rr := httptest.NewRecorder()
	writeError(rr, req, http.StatusBadRequest, "unknown column", nil)

	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("expected html error page, got %s", got)
	}
	if !strings.Contains(rr.Body.String(), "unknown column") || !strings.Contains(rr.Body.String(), "header-id") {
		t.Fatalf("expected message and request id on page, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewHandler(Deps{})
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodDelete, "/", nil), http.StatusMethodNotAllowed)
}
