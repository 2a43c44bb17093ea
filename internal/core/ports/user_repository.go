package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// UserRepository is the credential store adapter plus the account update
// paths. Implementations must be safe for concurrent use.
//
// Lookups return domain.ErrUserNotFound when no document matches; any other
// error is an infrastructure failure.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts user and returns it with its assigned ID. Duplicate email
	// or username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, active bool) (*domain.User, error)
	// ListRecent returns at most limit users, newest first, and the total
	// number of users.
	ListRecent(ctx context.Context, limit int) ([]*domain.User, int64, error)
}
