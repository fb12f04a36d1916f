package routehandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/cover"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
)

func newWatchlistFixture(fetch posterFetcherFunc) (*WatchlistHandler, *datastore.MemoryWatchlistStore) {
	if fetch == nil {
		fetch = func(ctx context.Context, posterPath string) (image.Image, error) {
			return nil, errors.New("no posters in this test")
		}
	}
	store := datastore.NewMemoryWatchlistStore()
	return NewWatchlistHandler(store, cover.NewComposer(fetch)), store
}

func createList(t *testing.T, handler *WatchlistHandler, email, name string) {
	t.Helper()
	rec := serve(handler.HandleCreate, authed(jsonRequest(t, http.MethodPost, "/watchlist", map[string]string{"name": name}), email))
	if rec.Code != http.StatusOK {
		t.Fatalf("creating %q for %s: status = %d, body %q", name, email, rec.Code, rec.Body.String())
	}
}

func addMovie(t *testing.T, handler *WatchlistHandler, email, name string, movie models.Movie) *httptest.ResponseRecorder {
	t.Helper()
	r := withURLParam(jsonRequest(t, http.MethodPut, "/watchlist/"+name, map[string]any{"movie": movie}), "name", name)
	return serve(handler.HandleAddMovie, authed(r, email))
}

func TestHandleCreate(t *testing.T) {
	t.Run("creates a watchlist owned by the session user", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)

		rec := serve(handler.HandleCreate, authed(jsonRequest(t, http.MethodPost, "/watchlist", map[string]string{"name": "Favorites"}), "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		payload := bodyMap(t, rec)
		if got := payload["owner_email"]; got != "a@x.com" {
			t.Errorf("owner_email = %v, want a@x.com", got)
		}
		if got := payload["name"]; got != "Favorites" {
			t.Errorf("name = %v, want Favorites", got)
		}
		if !strings.Contains(rec.Body.String(), `"movies":[]`) {
			t.Errorf("body = %q, want an empty movies array, not null", rec.Body.String())
		}
	})

	t.Run("fields outside the request contract are ignored", func(t *testing.T) {
		handler, store := newWatchlistFixture(nil)

		payload := map[string]any{"name": "Favorites", "pinned": true}
		rec := serve(handler.HandleCreate, authed(jsonRequest(t, http.MethodPost, "/watchlist", payload), "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		if _, err := store.FindByName(context.Background(), "a@x.com", "Favorites"); err != nil {
			t.Errorf("watchlist was not created: %v", err)
		}
	})

	t.Run("rejects a duplicate name for the same owner", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")

		rec := serve(handler.HandleCreate, authed(jsonRequest(t, http.MethodPost, "/watchlist", map[string]string{"name": "Favorites"}), "a@x.com"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if got, want := rec.Body.String(), `{"error":"Watchlist with this name already exists"}`; got != want {
			t.Errorf("body = %q, want %q", got, want)
		}
	})

	t.Run("the same name under another owner is allowed", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")
		createList(t, handler, "b@x.com", "Favorites")
	})

	t.Run("missing name is a 400", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)

		rec := serve(handler.HandleCreate, authed(jsonRequest(t, http.MethodPost, "/watchlist", map[string]string{}), "a@x.com"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if got, want := rec.Body.String(), `{"error":"name is required"}`; got != want {
			t.Errorf("body = %q, want %q", got, want)
		}
	})

	t.Run("without a session nothing reaches the store", func(t *testing.T) {
		handler, store := newWatchlistFixture(nil)

		rec := serve(handler.HandleCreate, jsonRequest(t, http.MethodPost, "/watchlist", map[string]string{"name": "Favorites"}))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if got := store.Ops(); got != 0 {
			t.Errorf("store operations = %d, want 0 for a rejected request", got)
		}
	})
}

func TestHandleList(t *testing.T) {
	t.Run("returns only the owner's lists in creation order", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "First")
		createList(t, handler, "a@x.com", "Second")
		createList(t, handler, "b@x.com", "Other")

		rec := serve(handler.HandleList, authed(jsonRequest(t, http.MethodGet, "/watchlist", nil), "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var lists []models.Watchlist
		if err := json.Unmarshal(rec.Body.Bytes(), &lists); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(lists) != 2 {
			t.Fatalf("got %d lists, want 2", len(lists))
		}
		if lists[0].Name != "First" || lists[1].Name != "Second" {
			t.Errorf("list order = [%s, %s], want [First, Second]", lists[0].Name, lists[1].Name)
		}
	})

	t.Run("no lists yields an empty array, not null", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)

		rec := serve(handler.HandleList, authed(jsonRequest(t, http.MethodGet, "/watchlist", nil), "a@x.com"))

		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("body = %q, want []", got)
		}
	})
}

func TestHandleGet(t *testing.T) {
	t.Run("fetches a list with its movies", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")
		addMovie(t, handler, "a@x.com", "Favorites", models.Movie{"title": "Dune", "poster_path": "/abc.jpg"})

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Favorites", nil), "name", "Favorites")
		rec := serve(handler.HandleGet, authed(r, "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		var list models.Watchlist
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if list.Name != "Favorites" || list.OwnerEmail != "a@x.com" {
			t.Errorf("got list %s owned by %s, want Favorites owned by a@x.com", list.Name, list.OwnerEmail)
		}
		if len(list.Movies) != 1 || list.Movies[0]["title"] != "Dune" {
			t.Errorf("movies = %v, want the single Dune entry", list.Movies)
		}
	})

	t.Run("unknown name is a 404", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Nope", nil), "name", "Nope")
		rec := serve(handler.HandleGet, authed(r, "a@x.com"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		if got, want := rec.Body.String(), `{"error":"Watchlist not found"}`; got != want {
			t.Errorf("body = %q, want %q", got, want)
		}
	})

	t.Run("another owner's list is invisible", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Favorites", nil), "name", "Favorites")
		rec := serve(handler.HandleGet, authed(r, "b@x.com"))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestHandleAddMovie(t *testing.T) {
	t.Run("appends movies in request order", func(t *testing.T) {
		handler, store := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")

		rec := addMovie(t, handler, "a@x.com", "Favorites", models.Movie{"title": "First"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got, want := rec.Body.String(), `{"message":"Movie added to watchlist"}`; got != want {
			t.Errorf("body = %q, want %q", got, want)
		}
		addMovie(t, handler, "a@x.com", "Favorites", models.Movie{"title": "Second"})

		list, err := store.FindByName(context.Background(), "a@x.com", "Favorites")
		if err != nil {
			t.Fatalf("FindByName: %v", err)
		}
		if len(list.Movies) != 2 {
			t.Fatalf("got %d movies, want 2", len(list.Movies))
		}
		if list.Movies[0]["title"] != "First" || list.Movies[1]["title"] != "Second" {
			t.Errorf("movie order = %v, want [First, Second]", list.Movies)
		}
	})

	t.Run("missing list is a 404 and creates nothing", func(t *testing.T) {
		handler, store := newWatchlistFixture(nil)

		rec := addMovie(t, handler, "a@x.com", "Ghost", models.Movie{"title": "Dune"})

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		lists, err := store.FindByOwner(context.Background(), "a@x.com")
		if err != nil {
			t.Fatalf("FindByOwner: %v", err)
		}
		if len(lists) != 0 {
			t.Errorf("a watchlist was created by a failed add: %v", lists)
		}
	})

	t.Run("missing movie payload is a 400", func(t *testing.T) {
		handler, _ := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")

		r := withURLParam(jsonRequest(t, http.MethodPut, "/watchlist/Favorites", map[string]any{}), "name", "Favorites")
		rec := serve(handler.HandleAddMovie, authed(r, "a@x.com"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("arbitrary movie payloads are stored intact", func(t *testing.T) {
		handler, store := newWatchlistFixture(nil)
		createList(t, handler, "a@x.com", "Favorites")

		movie := models.Movie{
			"title":  "Dune",
			"rating": 9.5,
			"tags":   []any{"sci-fi", "epic"},
			"extra":  map[string]any{"nested": true},
		}
		rec := addMovie(t, handler, "a@x.com", "Favorites", movie)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		list, err := store.FindByName(context.Background(), "a@x.com", "Favorites")
		if err != nil {
			t.Fatalf("FindByName: %v", err)
		}
		got := list.Movies[0]
		if got["rating"] != 9.5 {
			t.Errorf("rating = %v, want 9.5", got["rating"])
		}
		if extra, ok := got["extra"].(map[string]any); !ok || extra["nested"] != true {
			t.Errorf("nested payload not preserved: %v", got["extra"])
		}
	})
}

func TestHandleCover(t *testing.T) {
	poster := image.NewRGBA(image.Rect(0, 0, 123, 456))
	fetchPoster := posterFetcherFunc(func(ctx context.Context, posterPath string) (image.Image, error) {
		return poster, nil
	})

	t.Run("returns a JPEG with an ETag", func(t *testing.T) {
		handler, _ := newWatchlistFixture(fetchPoster)
		createList(t, handler, "a@x.com", "Favorites")
		addMovie(t, handler, "a@x.com", "Favorites", models.Movie{"title": "Dune", "poster_path": "/abc.jpg"})

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Favorites/cover", nil), "name", "Favorites")
		rec := serve(handler.HandleCover, authed(r, "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
			t.Errorf("Content-Type = %q, want image/jpeg", got)
		}
		etag := rec.Header().Get("ETag")
		if !strings.HasPrefix(etag, `"`) || !strings.HasSuffix(etag, `"`) || len(etag) < 3 {
			t.Errorf("ETag = %q, want a quoted hash", etag)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("body is not a JPEG: %v", err)
		}
		// A single poster keeps its native size.
		if cfg.Width != 123 || cfg.Height != 456 {
			t.Errorf("cover is %dx%d, want 123x456", cfg.Width, cfg.Height)
		}
	})

	t.Run("revalidating with the ETag yields 304", func(t *testing.T) {
		handler, _ := newWatchlistFixture(fetchPoster)
		createList(t, handler, "a@x.com", "Favorites")
		addMovie(t, handler, "a@x.com", "Favorites", models.Movie{"title": "Dune", "poster_path": "/abc.jpg"})

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Favorites/cover", nil), "name", "Favorites")
		first := serve(handler.HandleCover, authed(r, "a@x.com"))
		etag := first.Header().Get("ETag")

		r = withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Favorites/cover", nil), "name", "Favorites")
		r.Header.Set("If-None-Match", etag)
		second := serve(handler.HandleCover, authed(r, "a@x.com"))

		if second.Code != http.StatusNotModified {
			t.Fatalf("status = %d, want %d", second.Code, http.StatusNotModified)
		}
		if second.Body.Len() != 0 {
			t.Errorf("304 response carries a %d-byte body", second.Body.Len())
		}
	})

	t.Run("an empty list serves the default cover", func(t *testing.T) {
		handler, _ := newWatchlistFixture(fetchPoster)
		createList(t, handler, "a@x.com", "Empty")

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Empty/cover", nil), "name", "Empty")
		rec := serve(handler.HandleCover, authed(r, "a@x.com"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("body is not a JPEG: %v", err)
		}
		if cfg.Width != 600 || cfg.Height != 900 {
			t.Errorf("default cover is %dx%d, want 600x900", cfg.Width, cfg.Height)
		}
	})

	t.Run("unknown list is a 404", func(t *testing.T) {
		handler, _ := newWatchlistFixture(fetchPoster)

		r := withURLParam(jsonRequest(t, http.MethodGet, "/watchlist/Nope/cover", nil), "name", "Nope")
		rec := serve(handler.HandleCover, authed(r, "a@x.com"))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
