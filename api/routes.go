package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	rh "github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/route-handlers"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

const (
	authBasePath      = "/auth"
	watchlistBasePath = "/watchlist"
	journalBasePath   = "/journal"
)

const (
	googleSubPath = "/google"
	logoutSubPath = "/logout"
	coverSubPath  = "/cover"
)

const (
	paramName = "name" // Watchlist name path parameter
)

// Config carries the router-level settings that vary by deployment.
type Config struct {
	AllowedOrigins []string
}

func SetupRoutes(
	cfg Config,
	sessions *auth.Sessions,
	authHandler *rh.AuthHandler,
	watchlistHandler *rh.WatchlistHandler,
	journalHandler *rh.JournalHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)                        // Log every request
	r.Use(Metrics)                              // Prometheus request metrics
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // Session cookie travels cross-origin
		MaxAge:           300,
	}))
	r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8)) // Default Content-Type

	configureAuthRoutes(r, authHandler)

	// Everything below requires an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(auth.WithSession(sessions))
		r.Use(auth.RequireSession)
		configureWatchlistRoutes(r, watchlistHandler)
		configureJournalRoutes(r, journalHandler)
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Auth Routes ---
func configureAuthRoutes(r chi.Router, handler *rh.AuthHandler) {
	r.Route(authBasePath, func(r chi.Router) {
		r.Post(googleSubPath, webutil.MakeHandler(handler.HandleGoogleAuth)) // POST /auth/google
		r.Post(logoutSubPath, webutil.MakeHandler(handler.HandleLogout))    // POST /auth/logout
	})
}

// --- Watchlist Routes ---
func configureWatchlistRoutes(r chi.Router, handler *rh.WatchlistHandler) {
	specificListPath := pathWithParam("", paramName) // e.g., "/{name}"

	r.Route(watchlistBasePath, func(r chi.Router) {
		r.Post("/", webutil.MakeHandler(handler.HandleCreate))
		r.Get("/", webutil.MakeHandler(handler.HandleList))
		r.Route(specificListPath, func(r chi.Router) {
			r.Get("/", webutil.MakeHandler(handler.HandleGet))
			r.Put("/", webutil.MakeHandler(handler.HandleAddMovie))
			// Rendered collage for a watchlist
			r.Get(coverSubPath, webutil.MakeHandler(handler.HandleCover)) // GET /watchlist/{name}/cover
		})
	})
}

// --- Journal Routes ---
func configureJournalRoutes(r chi.Router, handler *rh.JournalHandler) {
	r.Route(journalBasePath, func(r chi.Router) {
		r.Post("/", webutil.MakeHandler(handler.HandleAdd))
		r.Get("/", webutil.MakeHandler(handler.HandleList))
	})
}

// --- Utility Functions ---

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}
