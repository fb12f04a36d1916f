package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/api"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/cover"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/logging"
	rh "github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/route-handlers"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/tmdb"
)

const (
	mongoPingTimeout     = 5 * time.Second
	oidcDiscoveryTimeout = 10 * time.Second
	shutdownTimeout      = 15 * time.Second
	sessionSweepInterval = time.Hour
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	MongoURI       string        `envconfig:"MONGO_URI" required:"true"`
	MongoDBName    string        `envconfig:"MONGO_DB_NAME" required:"true"`
	GoogleClientID string        `envconfig:"GOOGLE_CLIENT_ID" required:"true"`
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"https://feel-o-cinema.vercel.app"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionStore   string        `envconfig:"SESSION_STORE" default:"mongo"` // "mongo" or "memory"
	PosterBaseURL  string        `envconfig:"POSTER_BASE_URL"`
}

func mustLoadEnv() Config {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		slog.Error("Invalid environment configuration", "error", err)
		os.Exit(1)
	}
	return c
}

func main() {
	logging.Setup()
	cfg := mustLoadEnv()

	client, err := setupMongo(cfg.MongoURI)
	if err != nil {
		slog.Error("MongoDB setup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("MongoDB disconnect failed", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDBName)

	userRepo := datastore.NewUserRepository(db)
	watchlistRepo := datastore.NewWatchlistRepository(db)
	journalRepo := datastore.NewJournalRepository(db)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sessionStore, err := setupSessionStore(sweepCtx, cfg, db)
	if err != nil {
		slog.Error("Session store setup failed", "error", err)
		os.Exit(1)
	}
	sessions := auth.NewSessions(sessionStore, cfg.SessionTTL)

	// Google's OIDC discovery document is fetched once at startup.
	discoveryCtx, cancelDiscovery := context.WithTimeout(context.Background(), oidcDiscoveryTimeout)
	defer cancelDiscovery()
	verifier, err := auth.NewGoogleVerifier(discoveryCtx, cfg.GoogleClientID)
	if err != nil {
		slog.Error("Google verifier setup failed", "error", err)
		os.Exit(1)
	}

	posters := tmdb.NewImageClient(cfg.PosterBaseURL)
	composer := cover.NewComposer(posters)

	authHandler := rh.NewAuthHandler(userRepo, verifier, sessions)
	watchlistHandler := rh.NewWatchlistHandler(watchlistRepo, composer)
	journalHandler := rh.NewJournalHandler(journalRepo)

	router := api.SetupRoutes(
		api.Config{AllowedOrigins: cfg.AllowedOrigins},
		sessions,
		authHandler,
		watchlistHandler,
		journalHandler,
	)

	startServer(cfg.Port, router)
}

func setupMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) // Drop the unusable client
		return nil, err
	}

	slog.Info("Connected to MongoDB")
	return client, nil
}

// setupSessionStore builds the configured session backend. The Mongo store
// expires sessions via a TTL index; the memory store is swept periodically.
func setupSessionStore(ctx context.Context, cfg Config, db *mongo.Database) (auth.SessionStore, error) {
	switch cfg.SessionStore {
	case "mongo":
		store := auth.NewMongoSessionStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			// Sessions still expire through in-code checks; the index just
			// keeps the collection from growing unbounded.
			slog.Warn("Failed to create session TTL index", "error", err)
		}
		return store, nil
	case "memory":
		store := auth.NewMemorySessionStore()
		go sweepExpiredSessions(ctx, store)
		return store, nil
	default:
		return nil, errors.New("SESSION_STORE must be \"mongo\" or \"memory\"")
	}
}

func sweepExpiredSessions(ctx context.Context, store auth.SessionStore) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				slog.Error("Session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Swept expired sessions", "count", n)
			}
		}
	}
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownSignal // Block until signal received
	slog.Info("Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server gracefully stopped")
}
