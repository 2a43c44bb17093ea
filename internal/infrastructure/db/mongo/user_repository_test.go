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

func newMock(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func userDoc(id primitive.ObjectID, email string, active bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: "alice"},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "role", Value: "moderator"},
		{Key: "isActive", Value: active},
		{Key: "createdAt", Value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Key: "updatedAt", Value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func errorResponse(code int32) bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: code, Message: "boom", Name: "InternalError"})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch,
			userDoc(id, "alice@example.com", true)))

		u, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "  Alice@Example.com ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != id.Hex() || u.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if u.Role != domain.RoleModerator || !u.IsActive {
			t.Fatalf("role/status not decoded: %+v", u)
		}
		if u.PasswordHash != "$2a$10$hash" {
			t.Fatalf("expected hash to be decoded, got %q", u.PasswordHash)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "nobody@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(errorResponse(1))

		_, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "alice@example.com")
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			t.Fatal("store failure must not look like a missing user")
		}
	})
}

func TestUserRepository_FindByID_MalformedID(t *testing.T) {
	mt := newMock(t)

	mt.Run("malformed", func(mt *mtest.T) {
		_, err := NewUserRepository(mt.DB).FindByID(context.Background(), "not-a-hex-id")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMock(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		now := time.Now().UTC()
		u, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{
			Username:     "alice",
			Email:        "Alice@Example.com",
			PasswordHash: "hash",
			Role:         domain.RoleUser,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID == "" {
			t.Fatal("expected an assigned id")
		}
		if u.Email != "alice@example.com" {
			t.Fatalf("expected normalized email, got %q", u.Email)
		}
	})

	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Username: "alice", Email: "a@x.com"})
		if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(errorResponse(1))

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Username: "alice", Email: "a@x.com"})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	mt := newMock(t)

	mt.Run("updated", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc(id, "a@x.com", false)}))

		u, err := NewUserRepository(mt.DB).UpdateStatus(context.Background(), id.Hex(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.IsActive {
			t.Fatal("expected the returned document to be inactive")
		}
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := NewUserRepository(mt.DB).UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), false)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_UpdateProfile_UsernameTaken(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "E11000 duplicate key error",
			Name:    "DuplicateKey",
		}))

		name := "bob"
		_, err := NewUserRepository(mt.DB).UpdateProfile(context.Background(), primitive.NewObjectID().Hex(),
			domain.ProfileUpdate{Username: &name})
		if !errors.Is(err, domain.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})
}

func TestUserRepository_ListRecent(t *testing.T) {
	mt := newMock(t)

	mt.Run("list and count", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch,
				userDoc(first, "a@x.com", true),
				userDoc(second, "b@x.com", true)),
			mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int64(7)}}),
		)

		users, total, err := NewUserRepository(mt.DB).ListRecent(context.Background(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 || users[0].ID != first.Hex() {
			t.Fatalf("unexpected users: %+v", users)
		}
		if total != 7 {
			t.Fatalf("expected total 7, got %d", total)
		}
	})
}
