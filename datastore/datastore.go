// Package datastore provides persistence for users, watchlists and journal
// entries. The production implementations are backed by MongoDB collections;
// in-memory implementations exist for tests and for running without a
// database.
package datastore

import (
	"context"
	"errors"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
)

// Collection names used by the Mongo-backed repositories.
const (
	CollectionUsers      = "users"
	CollectionWatchlists = "watchlists"
	CollectionJournals   = "journals"
	CollectionSessions   = "sessions"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateName is returned by WatchlistStore.Insert when the owner
	// already has a watchlist with the same name.
	ErrDuplicateName = errors.New("duplicate watchlist name")
)

// UserStore persists user identities.
type UserStore interface {
	// FindByEmail retrieves a user by email. Returns ErrNotFound if no
	// user with that email exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Insert persists a new user and populates its ID.
	Insert(ctx context.Context, user *models.User) error
}

// WatchlistStore persists watchlists, keyed by owner email and name.
type WatchlistStore interface {
	// Insert persists a new watchlist and populates its ID. Returns
	// ErrDuplicateName if the owner already has a watchlist with the
	// same name.
	Insert(ctx context.Context, list *models.Watchlist) error

	// FindByName retrieves a single watchlist belonging to owner.
	// Returns ErrNotFound if it does not exist.
	FindByName(ctx context.Context, ownerEmail, name string) (*models.Watchlist, error)

	// FindByOwner retrieves all watchlists belonging to owner, oldest
	// first.
	FindByOwner(ctx context.Context, ownerEmail string) ([]models.Watchlist, error)

	// PushMovie atomically appends a movie to the named watchlist.
	// Returns ErrNotFound if the owner has no watchlist with that name.
	PushMovie(ctx context.Context, ownerEmail, name string, movie models.Movie) error
}

// JournalStore persists journal entries.
type JournalStore interface {
	// Insert persists a new journal entry and populates its ID.
	Insert(ctx context.Context, entry *models.JournalEntry) error

	// FindByOwner retrieves all journal entries belonging to owner,
	// oldest first.
	FindByOwner(ctx context.Context, ownerEmail string) ([]models.JournalEntry, error)
}
