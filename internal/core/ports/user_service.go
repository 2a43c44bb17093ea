package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// ProfileView is a user together with participation stats.
type ProfileView struct {
	User  *domain.User
	Stats domain.UserStats
}

// PublicProfileView is what anyone can see about a user.
type PublicProfileView struct {
	User          domain.PublicUser
	Stats         domain.UserStats
	RecentThreads []domain.ThreadSummary
}

// UserList is the admin listing of accounts.
type UserList struct {
	Users []*domain.User
	Total int64
	Limit int
}

// UserService covers account management outside authentication.
type UserService interface {
	Profile(ctx context.Context, userID string) (*ProfileView, error)
	PublicProfile(ctx context.Context, userID string) (*PublicProfileView, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, limit int) (*UserList, error)
	ChangeRole(ctx context.Context, actorID, userID string, role domain.Role) (*domain.User, error)
	ChangeStatus(ctx context.Context, actorID, userID string, active bool) (*domain.User, error)
}
