package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

const (
	defaultListLimit  = 20
	maxListLimit      = 100
	recentThreadLimit = 5
)

// UserService implements account management.
type UserService struct {
	users    ports.UserRepository
	threads  ports.ThreadStats
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(users ports.UserRepository, threads ports.ThreadStats, activity ports.ActivityRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, threads: threads, activity: activity, log: log}
}

// Profile returns the caller's own account with participation stats.
func (s *UserService) Profile(ctx context.Context, userID string) (*ports.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, accountErr(err)
	}
	stats, err := s.stats(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{User: user, Stats: stats}, nil
}

// PublicProfile returns what anyone may see about a user.
func (s *UserService) PublicProfile(ctx context.Context, userID string) (*ports.PublicProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, accountErr(err)
	}
	stats, err := s.stats(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.threads.RecentByAuthor(ctx, user.ID, recentThreadLimit)
	if err != nil {
		return nil, fmt.Errorf("recent threads: %w", err)
	}
	return &ports.PublicProfileView{User: user.Public(), Stats: stats, RecentThreads: recent}, nil
}

// UpdateProfile applies a self-service edit. A new username must not belong
// to another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Username != nil {
		name := strings.TrimSpace(*update.Username)
		update.Username = &name

		current, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, accountErr(err)
		}
		if name == current.Username {
			update.Username = nil
		} else {
			existing, err := s.users.FindByUsername(ctx, name)
			switch {
			case err == nil && existing.ID != userID:
				return nil, domain.ErrUsernameTaken
			case err != nil && !errors.Is(err, domain.ErrUserNotFound):
				return nil, err
			}
		}
	}
	var (
		user *domain.User
		err  error
	)
	if update.Empty() {
		user, err = s.users.FindByID(ctx, userID)
	} else {
		user, err = s.users.UpdateProfile(ctx, userID, update)
	}
	if err != nil {
		return nil, accountErr(err)
	}
	return user, nil
}

// List returns the newest accounts. limit defaults to 20 and is capped at 100.
func (s *UserService) List(ctx context.Context, limit int) (*ports.UserList, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	users, total, err := s.users.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &ports.UserList{Users: users, Total: total, Limit: limit}, nil
}

// ChangeRole sets a user's role. It takes effect on the user's next request
// because roles are not embedded in tokens.
func (s *UserService) ChangeRole(ctx context.Context, actorID, userID string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	user, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, accountErr(err)
	}
	s.activity.Record(domain.Activity{
		Type:       domain.ActivityRoleChanged,
		UserID:     user.ID,
		ActorID:    actorID,
		Detail:     map[string]string{"role": string(role)},
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("actor_id", actorID).Str("role", string(role)).Msg("user role changed")
	return user, nil
}

// ChangeStatus bans or reinstates a user. A ban takes effect on the next
// request even for tokens that are still within their validity window.
func (s *UserService) ChangeStatus(ctx context.Context, actorID, userID string, active bool) (*domain.User, error) {
	user, err := s.users.UpdateStatus(ctx, userID, active)
	if err != nil {
		return nil, accountErr(err)
	}
	s.activity.Record(domain.Activity{
		Type:       domain.ActivityStatusChanged,
		UserID:     user.ID,
		ActorID:    actorID,
		Detail:     map[string]string{"isActive": fmt.Sprintf("%t", active)},
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("actor_id", actorID).Bool("active", active).Msg("user status changed")
	return user, nil
}

func (s *UserService) stats(ctx context.Context, userID string) (domain.UserStats, error) {
	threads, err := s.threads.CountByAuthor(ctx, userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("count threads: %w", err)
	}
	replies, err := s.threads.CountRepliesByAuthor(ctx, userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("count replies: %w", err)
	}
	return domain.UserStats{ThreadCount: threads, ReplyCount: replies}, nil
}

// accountErr turns the credential store's "not found", which authentication
// reports as 401, into the 404 used by account management.
func accountErr(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}
