package domain

import "errors"

// Authentication failures. These surface as 401.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownIdentity    = errors.New("unknown identity")
	ErrMissingCredentials = errors.New("missing credentials")
)

// Authorization failures. These surface as 403.
var (
	ErrForbidden       = errors.New("forbidden")
	ErrAccountInactive = errors.New("account is deactivated")
)

// ErrStoreUnavailable marks an infrastructure failure while reading or
// writing identities. It surfaces as 500 and is never retried inline.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrAccountNotFound is a missing account outside authentication, such as a
// profile lookup or an admin update. It surfaces as 404.
var ErrAccountNotFound = errors.New("user not found")

var (
	ErrUserExists       = errors.New("user already exists")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidID        = errors.New("invalid id")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrRateLimited      = errors.New("too many requests, please try again later")
)
