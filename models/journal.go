package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// JournalEntry is an append-only free-text note about a movie. Date is an
// opaque client-supplied string; no format is enforced.
type JournalEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerEmail string             `bson:"owner_email" json:"owner_email"`
	MovieTitle string             `bson:"movie_title" json:"movie_title"`
	Entry      string             `bson:"entry" json:"entry"`
	Date       string             `bson:"date" json:"date"`
}
