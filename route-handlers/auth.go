package routehandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

// Holds dependencies for authentication route handlers.
type AuthHandler struct {
	Users    datastore.UserStore
	Verifier auth.IdentityVerifier
	Sessions *auth.Sessions
}

// Creates a new AuthHandler.
func NewAuthHandler(users datastore.UserStore, verifier auth.IdentityVerifier, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{Users: users, Verifier: verifier, Sessions: sessions}
}

// HandleGoogleAuth verifies a Google ID token, provisions the user on first
// login and issues a session cookie.
func (h *AuthHandler) HandleGoogleAuth(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Token string `json:"token"`
	}
	if err := webutil.DecodeJSONBody(r, &requestData); err != nil {
		return err
	}

	// An absent or empty token goes through verification like any other
	// bad token: the failure detail ends up in the 401 body.
	identity, err := h.Verifier.Verify(r.Context(), requestData.Token)
	if err != nil {
		return webutil.ErrUnauthorizedWrap(err)
	}

	user, err := h.Users.FindByEmail(r.Context(), identity.Email)
	if errors.Is(err, datastore.ErrNotFound) {
		// First login: the name captured here sticks; later logins do
		// not update it.
		user = &models.User{Email: identity.Email, Name: identity.Name}
		if err := h.Users.Insert(r.Context(), user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", identity.Email, err)
		}
		slog.Info("Created user on first login", "email", identity.Email)
	} else if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", identity.Email, err)
	}

	session, err := h.Sessions.Issue(r.Context(), identity.Email)
	if err != nil {
		return fmt.Errorf("failed to issue session for %s: %w", identity.Email, err)
	}
	h.Sessions.SetCookie(w, session)

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
	return nil
}

// HandleLogout revokes the current session, if any, and clears the cookie.
// It is idempotent: logging out without a session still succeeds.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) error {
	if err := h.Sessions.Destroy(r.Context(), r); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	h.Sessions.ClearCookie(w)

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	return nil
}
