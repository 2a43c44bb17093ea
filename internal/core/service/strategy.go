package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

// IdentityLookup is the read side of the credential store used by the
// strategies.
type IdentityLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// TokenParser validates a bearer token and returns the identity id it names.
type TokenParser interface {
	Parse(token string) (string, error)
}

// CredentialsStrategy authenticates an email and password pair.
type CredentialsStrategy struct {
	users    IdentityLookup
	verifier PasswordVerifier
	log      zerolog.Logger
}

func NewCredentialsStrategy(users IdentityLookup, verifier PasswordVerifier, log zerolog.Logger) *CredentialsStrategy {
	return &CredentialsStrategy{users: users, verifier: verifier, log: log}
}

// Resolve looks the email up and compares the password. "Not found" and
// "invalid credentials" are reported as different reasons.
func (s *CredentialsStrategy) Resolve(ctx context.Context, email, password string) domain.AuthResult {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Rejected(domain.ReasonMissingCredentials, nil)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Rejected(domain.ReasonNotFound, nil)
		}
		s.log.Error().Err(err).Msg("credentials lookup failed")
		return domain.Rejected(domain.ReasonInternal, err)
	}

	ok, err := s.verifier.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash unusable")
		return domain.Rejected(domain.ReasonInternal, err)
	}
	if !ok {
		return domain.Rejected(domain.ReasonInvalidCredentials, nil)
	}
	return domain.Authenticated(user)
}

// TokenStrategy authenticates a bearer token.
type TokenStrategy struct {
	users  IdentityLookup
	tokens TokenParser
	log    zerolog.Logger
}

func NewTokenStrategy(users IdentityLookup, tokens TokenParser, log zerolog.Logger) *TokenStrategy {
	return &TokenStrategy{users: users, tokens: tokens, log: log}
}

// Resolve verifies the token and re-reads the identity it references, so
// role and status changes are observed on the next request.
func (s *TokenStrategy) Resolve(ctx context.Context, token string) domain.AuthResult {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Rejected(domain.ReasonInvalidToken, nil)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Rejected(domain.ReasonUnknownIdentity, nil)
		}
		s.log.Error().Err(err).Str("user_id", id).Msg("token identity lookup failed")
		return domain.Rejected(domain.ReasonInternal, err)
	}
	return domain.Authenticated(user)
}

// Resolver picks a strategy from the credential material present on the
// request: a bearer token wins over email and password.
type Resolver struct {
	credentials *CredentialsStrategy
	token       *TokenStrategy
}

var _ ports.Authenticator = (*Resolver)(nil)

func NewResolver(credentials *CredentialsStrategy, token *TokenStrategy) *Resolver {
	return &Resolver{credentials: credentials, token: token}
}

func (r *Resolver) Authenticate(ctx context.Context, req ports.AuthRequest) domain.AuthResult {
	switch {
	case req.BearerToken != "":
		return r.token.Resolve(ctx, req.BearerToken)
	case req.Email != "" || req.Password != "":
		return r.credentials.Resolve(ctx, req.Email, req.Password)
	default:
		return domain.Rejected(domain.ReasonMissingCredentials, nil)
	}
}

// StrategyName labels the strategy a request would be routed to.
func StrategyName(req ports.AuthRequest) string {
	switch {
	case req.BearerToken != "":
		return "token"
	case req.Email != "" || req.Password != "":
		return "credentials"
	default:
		return "none"
	}
}
