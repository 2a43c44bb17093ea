package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

// PasswordHashing produces a one-way hash for a new password.
type PasswordHashing interface {
	Hash(password string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	auth     ports.Authenticator
	hasher   PasswordHashing
	tokens   ports.TokenIssuer
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	users ports.UserRepository,
	auth ports.Authenticator,
	hasher PasswordHashing,
	tokens ports.TokenIssuer,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		auth:     auth,
		hasher:   hasher,
		tokens:   tokens,
		activity: activity,
		log:      log,
	}
}

// Register creates an active account with the user role and returns a token
// for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.activity.Record(domain.Activity{
		Type:       domain.ActivityRegistered,
		UserID:     created.ID,
		ActorID:    created.ID,
		Identifier: email,
		OccurredAt: now,
	})
	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	return token, created, nil
}

// Login runs the credentials strategy and issues a token for an active
// identity. A deactivated account is refused with domain.ErrAccountInactive.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	result := s.auth.Authenticate(ctx, ports.AuthRequest{Email: email, Password: password})
	if !result.OK() {
		s.loginFailed(email, "", string(result.Reason()))
		return "", nil, result.Err()
	}

	user, err := Authorize(result)
	if err != nil {
		s.loginFailed(email, result.Identity().ID, "inactive")
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.activity.Record(domain.Activity{
		Type:       domain.ActivityLoginSucceeded,
		UserID:     user.ID,
		ActorID:    user.ID,
		Identifier: domain.NormalizeEmail(email),
		OccurredAt: time.Now().UTC(),
	})
	return token, user, nil
}

func (s *AuthService) loginFailed(email, userID, reason string) {
	lvl := zerolog.InfoLevel
	if reason == string(domain.ReasonInternal) {
		lvl = zerolog.ErrorLevel
	}
	s.log.WithLevel(lvl).Str("reason", reason).Msg("login failed")

	s.activity.Record(domain.Activity{
		Type:       domain.ActivityLoginFailed,
		UserID:     userID,
		ActorID:    userID,
		Identifier: domain.NormalizeEmail(email),
		Detail:     map[string]string{"reason": reason},
		OccurredAt: time.Now().UTC(),
	})
}

// IsAuthFailure reports whether err is an authentication or authorization
// failure rather than an infrastructure fault.
func IsAuthFailure(err error) bool {
	for _, target := range []error{
		domain.ErrUserNotFound,
		domain.ErrInvalidCredentials,
		domain.ErrInvalidToken,
		domain.ErrUnknownIdentity,
		domain.ErrMissingCredentials,
		domain.ErrForbidden,
		domain.ErrAccountInactive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
