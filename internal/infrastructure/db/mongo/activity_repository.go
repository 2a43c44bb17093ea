package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

const activityCollection = "auth_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

// Insert appends an audit record.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	occurred := a.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	doc := bson.M{
		"type":       string(a.Type),
		"occurredAt": occurred.UTC(),
		"recordedAt": time.Now().UTC(),
	}
	if a.UserID != "" {
		doc["userId"] = a.UserID
	}
	if a.ActorID != "" {
		doc["actorId"] = a.ActorID
	}
	if a.Identifier != "" {
		doc["identifier"] = a.Identifier
	}
	if len(a.Detail) > 0 {
		doc["detail"] = a.Detail
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeErr("insert activity", err)
	}
	return nil
}

// EnsureIndexes indexes records by subject and time.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "occurredAt", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
