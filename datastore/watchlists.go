package datastore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
)

// WatchlistRepository is the Mongo-backed WatchlistStore.
type WatchlistRepository struct {
	coll *mongo.Collection
}

func NewWatchlistRepository(db *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{coll: db.Collection(CollectionWatchlists)}
}

func (r *WatchlistRepository) Insert(ctx context.Context, list *models.Watchlist) error {
	// Check-then-insert: not race-proof without a unique index on
	// (owner_email, name), but matches the API's duplicate-name contract.
	err := r.coll.FindOne(ctx, bson.M{"owner_email": list.OwnerEmail, "name": list.Name}).Err()
	if err == nil {
		return ErrDuplicateName
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check for existing watchlist: %w", err)
	}

	if list.Movies == nil {
		list.Movies = []models.Movie{}
	}
	res, err := r.coll.InsertOne(ctx, list)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		list.ID = oid
	}
	return nil
}

func (r *WatchlistRepository) FindByName(ctx context.Context, ownerEmail, name string) (*models.Watchlist, error) {
	var list models.Watchlist
	err := r.coll.FindOne(ctx, bson.M{"owner_email": ownerEmail, "name": name}).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find watchlist %q: %w", name, err)
	}
	return &list, nil
}

func (r *WatchlistRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]models.Watchlist, error) {
	// Sort on _id ascending: ObjectIDs are time-prefixed, so this yields
	// creation order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_email": ownerEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlists: %w", err)
	}
	defer cursor.Close(ctx)

	var lists []models.Watchlist
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode watchlists: %w", err)
	}
	return lists, nil
}

func (r *WatchlistRepository) PushMovie(ctx context.Context, ownerEmail, name string, movie models.Movie) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"owner_email": ownerEmail, "name": name},
		bson.M{"$push": bson.M{"movies": movie}},
	)
	if err != nil {
		return fmt.Errorf("failed to push movie to watchlist %q: %w", name, err)
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
