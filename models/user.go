package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is created on first successful identity verification and never
// mutated afterwards (name changes at the provider are not picked up).
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name" json:"name"`
}
