package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/session"
)

type sessionCookies struct {
	store  *session.MemoryStore
	secure bool
}

type sessionCookiesKey struct{}

// Sessions attaches the visitor's session to the request context. Visitors
// without a known cookie get a fresh session that is only stored, and only
// receives a cookie, once a handler calls KeepSession or RenewSession. The
// cookie has no expiry so it lasts for the browser session.
func Sessions(store *session.MemoryStore, secure bool) func(http.Handler) http.Handler {
	cookies := &sessionCookies{store: store, secure: secure}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if c, err := r.Cookie(session.CookieName); err == nil {
				sess, _ = store.Get(c.Value)
			}
			if sess == nil {
				sess = store.New()
			}

			ctx := context.WithValue(r.Context(), sessionCookiesKey{}, cookies)
			ctx = withSessionLogger(session.WithSession(ctx, sess), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// KeepSession stores the request's session, sending its cookie the first time.
func KeepSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	cookies, hasStore := r.Context().Value(sessionCookiesKey{}).(*sessionCookies)
	if !ok || !hasStore {
		return
	}
	if cookies.store.Save(sess) {
		cookies.set(w, sess)
	}
}

// RenewSession moves the request's session to a new id and sends the new
// cookie. Call it when the session gains privileges, so an id handed out
// earlier cannot ride along.
func RenewSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	cookies, hasStore := r.Context().Value(sessionCookiesKey{}).(*sessionCookies)
	if !ok || !hasStore {
		return sess
	}
	renewed := cookies.store.Renew(sess)
	cookies.set(w, renewed)
	return renewed
}

func (c *sessionCookies) set(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func withSessionLogger(ctx context.Context, sess *session.Session) context.Context {
	logger := logging.FromContext(ctx, nil)
	if logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, logger.With(slog.String(logging.FieldSessionID, sess.ID)))
}

// RequireAccess redirects visitors who have not passed the access gate back
// to the page root, where the login form is shown.
func RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.Access.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
