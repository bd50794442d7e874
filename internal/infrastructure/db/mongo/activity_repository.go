package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/useraccounts/user-service/internal/core/domain"
)

const collectionActivity = "user_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database, timeout time.Duration) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(collectionActivity), timeout: callTimeout(timeout)}
}

// InsertActivity persists an event to the user_activity audit collection.
func (r *ActivityRepository) InsertActivity(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := bson.M{
		"type":        string(event.Type),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Username != "" {
		doc["username"] = event.Username
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes creates lookup indexes on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetName("type_idx")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
