package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Movie is an arbitrary payload supplied by the client. No schema is
// enforced on it; the cover composer only cares about poster_path.
type Movie map[string]any

// PosterPath returns the movie's poster_path when it is a non-empty
// string, and "" otherwise (absent, null, or non-string values).
func (m Movie) PosterPath() string {
	s, _ := m["poster_path"].(string)
	return s
}

// Watchlist is a named, per-user sequence of movies. The (owner_email,
// name) pair is the lookup key everywhere; movies are append-only.
type Watchlist struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerEmail string             `bson:"owner_email" json:"owner_email"`
	Name       string             `bson:"name" json:"name"`
	Movies     []Movie            `bson:"movies" json:"movies"`
}
