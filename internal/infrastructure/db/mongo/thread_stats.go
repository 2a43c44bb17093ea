package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

const threadsCollection = "threads"

// ThreadStats reads counts and summaries from the threads collection. It
// never writes.
type ThreadStats struct {
	coll *mongo.Collection
}

var _ ports.ThreadStats = (*ThreadStats)(nil)

func NewThreadStats(db *mongo.Database) *ThreadStats {
	return &ThreadStats{coll: db.Collection(threadsCollection)}
}

type threadSummaryDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Category  primitive.ObjectID `bson:"category,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (s *ThreadStats) CountByAuthor(ctx context.Context, userID string) (int64, error) {
	return s.count(ctx, "author", userID)
}

func (s *ThreadStats) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return s.count(ctx, "category", categoryID)
}

// CountRepliesByAuthor counts embedded replies written by userID across all
// threads.
func (s *ThreadStats) CountRepliesByAuthor(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$replies"}},
		{{Key: "$match", Value: bson.M{"replies.author": oid}}},
		{{Key: "$count", Value: "total"}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, storeErr("count replies", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, storeErr("decode reply count", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (s *ThreadStats) RecentByAuthor(ctx context.Context, userID string, limit int) ([]domain.ThreadSummary, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.ThreadSummary{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"title": 1, "category": 1, "createdAt": 1})
	cur, err := s.coll.Find(ctx, bson.M{"author": oid}, opts)
	if err != nil {
		return nil, storeErr("recent threads", err)
	}
	defer cur.Close(ctx)

	var docs []threadSummaryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr("decode threads", err)
	}

	out := make([]domain.ThreadSummary, len(docs))
	for i, d := range docs {
		out[i] = domain.ThreadSummary{ID: d.ID.Hex(), Title: d.Title, CreatedAt: d.CreatedAt.UTC()}
		if !d.Category.IsZero() {
			out[i].CategoryID = d.Category.Hex()
		}
	}
	return out, nil
}

func (s *ThreadStats) count(ctx context.Context, field, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{field: oid})
	if err != nil {
		return 0, storeErr("count threads", err)
	}
	return n, nil
}
