package server

import (
	"context"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/poller"
	"github.com/preston-bernstein/logo-scatter-service/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	src := t.TempDir()
	testutil.WritePNG(t, src, "Universidad de Chile.png", 80, 80, color.NRGBA{R: 200, A: 255})
	return config.Config{
		Port: "0",
		Logos: config.LogosConfig{
			SourceDir:      src,
			OutputDir:      filepath.Join(t.TempDir(), "normalized"),
			Size:           50,
			CanonicalNames: true,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.sessions == nil || srv.catalog == nil {
		t.Fatalf("expected session store and catalog wired")
	}
}

func TestNewFailsOnBadCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Users = "alice"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected malformed inline users to fail")
	}

	cfg = testConfig(t)
	cfg.Auth.CredentialsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected missing credentials file to fail")
	}
}

func TestServerNormalizesAtBootAndServes(t *testing.T) {
	cfg := testConfig(t)
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := srv.poller.Start(context.Background()); err != nil {
		t.Fatalf("boot normalization: %v", err)
	}
	defer srv.poller.Stop(context.Background())

	if _, err := os.Stat(filepath.Join(cfg.Logos.OutputDir, "universidad_de_chile.png")); err != nil {
		t.Fatalf("expected canonical normalized logo: %v", err)
	}
	if srv.catalog.Len() != 1 {
		t.Fatalf("expected catalog loaded, got %d logos", srv.catalog.Len())
	}

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/api/logos", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected logging middleware to set request id")
	}
}

func TestServerGatesPageWhenUsersConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Users = "alice:secret"
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/api/logos", nil), http.StatusSeeOther)
}

func TestServerMountsAdminRefreshWithToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "tok")
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/logos/refresh", nil)
	req.Header.Set("Authorization", "Bearer tok")
	testutil.AssertStatus(t, testutil.ServeRequest(srv.Handler(), req), http.StatusOK)
	if srv.catalog.Len() != 1 {
		t.Fatalf("expected refresh to load the catalog")
	}
}

func TestServerReadyBeforeNormalization(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
}

func TestRunFailsWhenBootNormalizationFails(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.Logos.SourceDir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write broken logo: %v", err)
	}
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = srv.Run(ctx, cancel)
	if !errors.Is(err, logos.ErrUnreadableLogo) {
		t.Fatalf("expected unreadable logo error, got %v", err)
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &StubPoller{}
	httpSrv := &StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &StubPoller{}
	blocking := &BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	p := &StubPoller{Err: errors.New("stop failure")}
	httpSrv := &StubHTTPServer{ShutdownErr: errors.New("shutdown failure")}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &ErrHTTPServer{}, &StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &StubPoller{StatusVal: poller.Status{LastSuccess: time.Now()}}
	httpSrv := &CloseableHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, cancel)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean run, got %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.StartCalls)
	}
	if plr.StopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestRunReturnsStartError(t *testing.T) {
	plr := &StubPoller{StartErr: errors.New("boom")}
	httpSrv := &StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	if err := srv.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected start error")
	}
	if httpSrv.ListenCalls != 0 {
		t.Fatalf("expected http server never started")
	}
	if plr.StopCalls != 1 || httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected cleanup after failed start")
	}
}
