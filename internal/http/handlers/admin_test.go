package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(context.Context) error {
	s.calls++
	return s.err
}

type stubCatalog struct {
	Catalog
	keys []string
}

func (s stubCatalog) Keys() []string { return s.keys }

func refreshRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/logos/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRefreshLogosRequiresToken(t *testing.T) {
	ref := &stubRefresher{}
	h := NewAdminHandler(ref, nil, "secret", nil)

	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.RefreshLogos), refreshRequest("")), http.StatusUnauthorized)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.RefreshLogos), refreshRequest("wrong")), http.StatusUnauthorized)

	noToken := NewAdminHandler(ref, nil, "", nil)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(noToken.RefreshLogos), refreshRequest("")), http.StatusUnauthorized)
	if ref.calls != 0 {
		t.Fatalf("expected no refresh for unauthorized calls")
	}
}

func TestRefreshLogos(t *testing.T) {
	ref := &stubRefresher{}
	h := NewAdminHandler(ref, stubCatalog{keys: []string{"a", "b"}}, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshLogos), refreshRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["logos"] != float64(2) || ref.calls != 1 {
		t.Fatalf("unexpected refresh response %+v (calls=%d)", resp, ref.calls)
	}
}

func TestRefreshLogosFailures(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret", nil)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.RefreshLogos), refreshRequest("secret")), http.StatusServiceUnavailable)

	h = NewAdminHandler(&stubRefresher{err: errors.New("decode")}, nil, "secret", nil)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.RefreshLogos), refreshRequest("secret")), http.StatusInternalServerError)
}

func TestAdminTokenFromEnv(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "tok")
	if got := AdminTokenFromEnv(); got != "tok" {
		t.Fatalf("expected token from env, got %q", got)
	}
}
