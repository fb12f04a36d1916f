package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

type contextKey int

const sessionContextKey contextKey = iota

// WithSession resolves the request's session cookie, if any, and stashes the
// session in the request context. It never rejects; combine with
// RequireSession on routes that demand authentication.
func WithSession(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.FromRequest(r)
			if err == nil {
				r = r.WithContext(ContextWithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithSession returns a copy of ctx carrying session, as installed by
// WithSession.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// RequireSession rejects unauthenticated requests with 401 before any
// handler (and any store access) runs.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			slog.Warn("Rejecting unauthenticated request", "path", r.URL.Path, "method", r.Method)
			webutil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the session resolved by WithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}

// EmailFromContext returns the authenticated owner email, or false when the
// request carries no live session.
func EmailFromContext(ctx context.Context) (string, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return session.Email, true
}
