package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
)

// MongoSessionStore persists sessions in a Mongo collection so they survive
// process restarts.
type MongoSessionStore struct {
	coll *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{coll: db.Collection(datastore.CollectionSessions)}
}

// EnsureIndexes creates the TTL index that lets Mongo reap expired sessions
// on its own. DeleteExpired still works without it.
func (s *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create session TTL index: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) Create(ctx context.Context, session *Session) error {
	if _, err := s.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Expired(time.Now().UTC()) {
		// The TTL reaper runs on its own schedule; treat an expired
		// document as already gone.
		_, _ = s.coll.DeleteOne(ctx, bson.M{"_id": id})
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) DeleteExpired(ctx context.Context) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return int(res.DeletedCount), nil
}
