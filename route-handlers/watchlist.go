package routehandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/cover"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/validate"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

// Holds dependencies for watchlist route handlers.
type WatchlistHandler struct {
	Lists    datastore.WatchlistStore
	Composer *cover.Composer
}

// Creates a new WatchlistHandler.
func NewWatchlistHandler(lists datastore.WatchlistStore, composer *cover.Composer) *WatchlistHandler {
	return &WatchlistHandler{Lists: lists, Composer: composer}
}

func (h *WatchlistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	var requestData struct {
		Name string `json:"name" validate:"required"`
	}
	if err := webutil.DecodeJSONBody(r, &requestData); err != nil {
		return err
	}
	if errs := validate.Map(requestData); errs != nil {
		return webutil.ErrBadRequest(validate.Message(errs))
	}

	list := &models.Watchlist{
		OwnerEmail: email,
		Name:       requestData.Name,
		Movies:     []models.Movie{},
	}
	err := h.Lists.Insert(r.Context(), list)
	if errors.Is(err, datastore.ErrDuplicateName) {
		return webutil.ErrBadRequest("Watchlist with this name already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create watchlist %q: %w", requestData.Name, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, list)
	return nil
}

func (h *WatchlistHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	lists, err := h.Lists.FindByOwner(r.Context(), email)
	if err != nil {
		return fmt.Errorf("failed to retrieve watchlists: %w", err)
	}
	if lists == nil {
		lists = []models.Watchlist{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, lists)
	return nil
}

func (h *WatchlistHandler) HandleGet(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	name := chi.URLParam(r, "name")

	list, err := h.Lists.FindByName(r.Context(), email, name)
	if errors.Is(err, datastore.ErrNotFound) {
		return webutil.ErrNotFoundWrap("Watchlist not found", err)
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve watchlist %q: %w", name, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, list)
	return nil
}

func (h *WatchlistHandler) HandleAddMovie(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	name := chi.URLParam(r, "name")

	var requestData struct {
		Movie models.Movie `json:"movie"`
	}
	if err := webutil.DecodeJSONBody(r, &requestData); err != nil {
		return err
	}
	// The movie payload is deliberately schemaless; only its presence is
	// checked.
	if requestData.Movie == nil {
		return webutil.ErrBadRequest("movie is required")
	}

	err := h.Lists.PushMovie(r.Context(), email, name, requestData.Movie)
	if errors.Is(err, datastore.ErrNotFound) {
		return webutil.ErrNotFoundWrap("Watchlist not found", err)
	}
	if err != nil {
		return fmt.Errorf("failed to add movie to watchlist %q: %w", name, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Movie added to watchlist"})
	return nil
}

// HandleCover renders the collage cover for a watchlist. Responses carry an
// ETag derived from the image bytes so unchanged covers revalidate cheaply.
func (h *WatchlistHandler) HandleCover(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	name := chi.URLParam(r, "name")

	list, err := h.Lists.FindByName(r.Context(), email, name)
	if errors.Is(err, datastore.ErrNotFound) {
		return webutil.ErrNotFoundWrap("Watchlist not found", err)
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve watchlist %q: %w", name, err)
	}

	imageBytes, err := h.Composer.Render(r.Context(), list.Movies)
	if err != nil {
		return fmt.Errorf("failed to render cover for %q: %w", name, err)
	}

	hash, err := webutil.GenerateHash(imageBytes)
	if err != nil {
		return fmt.Errorf("failed to hash cover for %q: %w", name, err)
	}
	etag := `"` + hash + `"`

	w.Header().Set(webutil.HeaderETag, etag)
	w.Header().Set(webutil.HeaderCacheControl, "private, no-cache")
	if r.Header.Get(webutil.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeJPEG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(imageBytes)
	return nil
}
