package routehandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

// fakeVerifier maps raw tokens to identities; unknown tokens fail the way a
// bad signature would.
type fakeVerifier struct {
	identities map[string]auth.Identity
}

func (v *fakeVerifier) Verify(ctx context.Context, rawToken string) (*auth.Identity, error) {
	identity, ok := v.identities[rawToken]
	if !ok {
		return nil, errors.New("id token verification failed: invalid token")
	}
	return &identity, nil
}

// posterFetcherFunc adapts a function to the cover.PosterFetcher interface.
type posterFetcherFunc func(ctx context.Context, posterPath string) (image.Image, error)

func (f posterFetcherFunc) FetchPoster(ctx context.Context, posterPath string) (image.Image, error) {
	return f(ctx, posterPath)
}

func newTestSessions() *auth.Sessions {
	return auth.NewSessions(auth.NewMemorySessionStore(), time.Hour)
}

// authed stamps the request with a live session for email, the way the
// session middleware would.
func authed(r *http.Request, email string) *http.Request {
	now := time.Now().UTC()
	session := &auth.Session{
		ID:        "test-session",
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	return r.WithContext(auth.ContextWithSession(r.Context(), session))
}

// withURLParam injects a chi route parameter so handlers can run without a
// router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode request payload: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &body)
	r.Header.Set(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8)
	return r
}

// serve runs an AppHandler through MakeHandler, exercising the same error
// mapping the router applies.
func serve(handler webutil.AppHandler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	webutil.MakeHandler(handler)(rec, r)
	return rec
}

func bodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", auth.SessionCookieName)
	return nil
}
