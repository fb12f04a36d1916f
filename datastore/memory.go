package datastore

import (
	"context"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
)

// MemoryUserStore is an in-memory implementation of UserStore.
// Suitable for development and testing.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by email
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.Email] = *user
	return nil
}

// MemoryWatchlistStore is an in-memory implementation of WatchlistStore.
// It preserves insertion order and counts every store operation, which lets
// tests assert that rejected requests never reached the persistence layer.
type MemoryWatchlistStore struct {
	mu    sync.RWMutex
	lists []models.Watchlist
	ops   atomic.Int64
}

func NewMemoryWatchlistStore() *MemoryWatchlistStore {
	return &MemoryWatchlistStore{}
}

// Ops reports how many store operations have been executed.
func (s *MemoryWatchlistStore) Ops() int64 {
	return s.ops.Load()
}

func (s *MemoryWatchlistStore) Insert(ctx context.Context, list *models.Watchlist) error {
	s.ops.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.lists {
		if existing.OwnerEmail == list.OwnerEmail && existing.Name == list.Name {
			return ErrDuplicateName
		}
	}
	if list.ID.IsZero() {
		list.ID = primitive.NewObjectID()
	}
	if list.Movies == nil {
		list.Movies = []models.Movie{}
	}
	s.lists = append(s.lists, copyWatchlist(*list))
	return nil
}

func (s *MemoryWatchlistStore) FindByName(ctx context.Context, ownerEmail, name string) (*models.Watchlist, error) {
	s.ops.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range s.lists {
		if list.OwnerEmail == ownerEmail && list.Name == name {
			found := copyWatchlist(list)
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryWatchlistStore) FindByOwner(ctx context.Context, ownerEmail string) ([]models.Watchlist, error) {
	s.ops.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Watchlist
	for _, list := range s.lists {
		if list.OwnerEmail == ownerEmail {
			out = append(out, copyWatchlist(list))
		}
	}
	return out, nil
}

func (s *MemoryWatchlistStore) PushMovie(ctx context.Context, ownerEmail, name string, movie models.Movie) error {
	s.ops.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lists {
		if s.lists[i].OwnerEmail == ownerEmail && s.lists[i].Name == name {
			s.lists[i].Movies = append(s.lists[i].Movies, copyMovie(movie))
			return nil
		}
	}
	return ErrNotFound
}

// MemoryJournalStore is an in-memory implementation of JournalStore.
type MemoryJournalStore struct {
	mu      sync.RWMutex
	entries []models.JournalEntry
}

func NewMemoryJournalStore() *MemoryJournalStore {
	return &MemoryJournalStore{}
}

func (s *MemoryJournalStore) Insert(ctx context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryJournalStore) FindByOwner(ctx context.Context, ownerEmail string) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.JournalEntry
	for _, entry := range s.entries {
		if entry.OwnerEmail == ownerEmail {
			out = append(out, entry)
		}
	}
	return out, nil
}

// copyWatchlist deep-copies a watchlist so callers cannot mutate stored state.
func copyWatchlist(list models.Watchlist) models.Watchlist {
	copied := list
	copied.Movies = make([]models.Movie, len(list.Movies))
	for i, movie := range list.Movies {
		copied.Movies[i] = copyMovie(movie)
	}
	return copied
}

func copyMovie(movie models.Movie) models.Movie {
	copied := make(models.Movie, len(movie))
	for k, v := range movie {
		copied[k] = v
	}
	return copied
}
