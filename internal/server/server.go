package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/logo-scatter-service/internal/auth"
	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	httpserver "github.com/preston-bernstein/logo-scatter-service/internal/http"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/handlers"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/middleware"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/metrics"
	"github.com/preston-bernstein/logo-scatter-service/internal/plot"
	"github.com/preston-bernstein/logo-scatter-service/internal/poller"
	"github.com/preston-bernstein/logo-scatter-service/internal/session"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	sessions      *session.MemoryStore
	catalog       *logos.Catalog
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default normalizer, catalog and gate wiring.
// It fails when the credential sources cannot be read.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	store, err := auth.LoadStore(cfg.Auth.CredentialsFile, cfg.Auth.Users)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	normalizer := logos.NewNormalizer(logos.Options{
		SourceDir: cfg.Logos.SourceDir,
		OutputDir: cfg.Logos.OutputDir,
		Size:      cfg.Logos.Size,
		Canonical: cfg.Logos.CanonicalNames,
		Workers:   cfg.Logos.Workers,
	}, logger)
	catalog := logos.NewCatalog(normalizer.OutputDir())
	plr := poller.New(normalizer, catalog, logger, recorder, cfg.Logos.RefreshInterval)

	gate := auth.NewGate(store, cfg.Auth.AttemptsPerMinute)
	sessions := session.NewMemoryStore(gate.NewAccess, cfg.Auth.MaxSessions)
	httpSrv := buildHTTPServer(cfg, gate, sessions, catalog, plr, logger, recorder)

	if gate.Enabled() {
		logging.Info(logger, "access gate enabled", slog.Int(logging.FieldCount, store.Len()))
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		sessions:      sessions,
		catalog:       catalog,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, gate *auth.Gate, sessions *session.MemoryStore, catalog *logos.Catalog, plr *poller.Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(handlers.Deps{
		Gate:    gate,
		Catalog: catalog,
		Plot: plot.Config{
			CategoryColumn: cfg.Plot.CategoryColumn,
			Policy:         plot.ParseAxisPolicy(cfg.Plot.AxisPolicy),
			Zoom:           cfg.Plot.LogoZoom,
			LogoSize:       cfg.Logos.Size,
			Width:          cfg.Plot.Width,
			Height:         cfg.Plot.Height,
		},
		PreviewRows:  cfg.Plot.PreviewRows,
		MaxUpload:    cfg.Upload.MaxBytes,
		SidebarImage: cfg.Logos.SidebarImage,
		Recorder:     recorder,
		Logger:       logger,
		StatusFn:     plr.Status,
	})

	opts := httpserver.RouterOptions{
		Sessions:      sessions,
		SecureCookies: cfg.Auth.SecureCookies,
	}
	// Only mount the admin refresh endpoint if a token is set.
	if token := handlers.AdminTokenFromEnv(); token != "" {
		opts.Admin = handlers.NewAdminHandler(plr, catalog, token, logger)
	}
	router := httpserver.NewRouter(handler, opts)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run normalizes the logos, starts the HTTP server, then waits for context
// cancellation to shut down gracefully. A failed boot normalization is
// returned without serving any traffic.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) error {
	s.startMetrics()
	if err := s.poller.Start(ctx); err != nil {
		logging.Error(s.logger, "logo normalization failed", err)
		s.gracefulShutdown()
		return fmt.Errorf("normalize logos: %w", err)
	}
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
	return nil
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
