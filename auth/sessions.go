package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

// SessionCookieName is the cookie that carries the session ID.
const SessionCookieName = "session_id"

// sessionIDBytes is the entropy of a session ID; the hex-encoded cookie
// value is twice as long.
const sessionIDBytes = 32

// Sessions issues, resolves and revokes cookie-backed sessions.
type Sessions struct {
	store SessionStore
	ttl   time.Duration
}

func NewSessions(store SessionStore, ttl time.Duration) *Sessions {
	return &Sessions{store: store, ttl: ttl}
}

// Issue creates and persists a new session for the given owner email.
func (s *Sessions) Issue(ctx context.Context, email string) (*Session, error) {
	id, err := webutil.GenerateRandomToken(sessionIDBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now().UTC()
	session := &Session{
		ID:        id,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// FromRequest resolves the session referenced by the request's cookie.
// Returns ErrSessionNotFound when the cookie is absent or stale.
func (s *Sessions) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrSessionNotFound
	}
	return s.store.Get(r.Context(), cookie.Value)
}

// Destroy revokes the session referenced by the request's cookie, if any.
func (s *Sessions) Destroy(ctx context.Context, r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.store.Delete(ctx, cookie.Value)
}

// SetCookie writes the session cookie. SameSite=None with Secure lets the
// browser attach it on cross-origin requests from the frontend.
func (s *Sessions) SetCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearCookie instructs the browser to drop the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
