package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/openforum/forum-api/internal/core/domain"
)

func TestThreadStats_CountByAuthor(t *testing.T) {
	mt := newMock(t)

	mt.Run("counted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, threadsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int64(4)}}))

		n, err := NewThreadStats(mt.DB).CountByAuthor(context.Background(), primitive.NewObjectID().Hex())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 4 {
			t.Fatalf("expected 4, got %d", n)
		}
	})

	mt.Run("malformed id counts zero", func(mt *mtest.T) {
		n, err := NewThreadStats(mt.DB).CountByAuthor(context.Background(), "nope")
		if err != nil || n != 0 {
			t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
		}
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(errorResponse(1))

		_, err := NewThreadStats(mt.DB).CountByCategory(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestThreadStats_CountRepliesByAuthor(t *testing.T) {
	mt := newMock(t)

	mt.Run("aggregated", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, threadsCollection), mtest.FirstBatch,
			bson.D{{Key: "total", Value: int64(12)}}))

		n, err := NewThreadStats(mt.DB).CountRepliesByAuthor(context.Background(), primitive.NewObjectID().Hex())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 12 {
			t.Fatalf("expected 12, got %d", n)
		}
	})

	mt.Run("no replies", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, threadsCollection), mtest.FirstBatch))

		n, err := NewThreadStats(mt.DB).CountRepliesByAuthor(context.Background(), primitive.NewObjectID().Hex())
		if err != nil || n != 0 {
			t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
		}
	})
}

func TestThreadStats_RecentByAuthor(t *testing.T) {
	mt := newMock(t)

	mt.Run("summaries", func(mt *mtest.T) {
		threadID, categoryID := primitive.NewObjectID(), primitive.NewObjectID()
		created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, threadsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: threadID},
				{Key: "title", Value: "hello"},
				{Key: "category", Value: categoryID},
				{Key: "createdAt", Value: created},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "title", Value: "uncategorised"},
				{Key: "createdAt", Value: created},
			},
		))

		got, err := NewThreadStats(mt.DB).RecentByAuthor(context.Background(), primitive.NewObjectID().Hex(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(got))
		}
		if got[0].ID != threadID.Hex() || got[0].CategoryID != categoryID.Hex() || !got[0].CreatedAt.Equal(created) {
			t.Fatalf("unexpected first summary: %+v", got[0])
		}
		if got[1].CategoryID != "" {
			t.Fatalf("expected empty category, got %q", got[1].CategoryID)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		got, err := NewThreadStats(mt.DB).RecentByAuthor(context.Background(), "nope", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected an empty non-nil slice, got %#v", got)
		}
	})
}
