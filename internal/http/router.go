package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/logo-scatter-service/internal/http/handlers"
	"github.com/preston-bernstein/logo-scatter-service/internal/http/middleware"
	"github.com/preston-bernstein/logo-scatter-service/internal/session"
)

// RouterOptions carries the non-handler pieces the router mounts.
type RouterOptions struct {
	Sessions      *session.MemoryStore
	SecureCookies bool
	Admin         *handlers.AdminHandler
}

// NewRouter registers HTTP routes on a chi router. Probes stay outside the
// session layer; everything past /login needs a passed access gate.
func NewRouter(h *handlers.Handler, opts RouterOptions) nethttp.Handler {
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(nil, 0)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if opts.Admin != nil {
		r.Post("/api/logos/refresh", opts.Admin.RefreshLogos)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(opts.Sessions, opts.SecureCookies))
		r.Get("/", h.Home)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAccess)
			r.Post("/upload", h.Upload)
			r.Get("/plot.png", h.Plot)
			r.Get("/sidebar", h.Sidebar)
			r.Get("/api/logos", h.Logos)
		})
	})
	return r
}
