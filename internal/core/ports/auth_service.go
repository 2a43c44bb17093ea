package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// AuthRequest is the credential material found on an inbound request. Which
// fields are set decides the strategy used to resolve it.
type AuthRequest struct {
	Email       string
	Password    string
	BearerToken string
}

// Authenticator resolves credential material to an AuthResult. It never
// returns an error: every failure is expressed as a rejection.
type Authenticator interface {
	Authenticate(ctx context.Context, req AuthRequest) domain.AuthResult
}

// TokenIssuer mints bearer tokens for an identity.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// RegisterInput carries a self-service sign-up.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
