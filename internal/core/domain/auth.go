package domain

import "errors"

// RejectReason explains why authentication did not establish an identity.
type RejectReason string

const (
	ReasonNone               RejectReason = ""
	ReasonNotFound           RejectReason = "not_found"
	ReasonInvalidCredentials RejectReason = "invalid_credentials"
	ReasonInvalidToken       RejectReason = "invalid_token"
	ReasonUnknownIdentity    RejectReason = "unknown_identity"
	ReasonMissingCredentials RejectReason = "missing_credentials"
	ReasonInternal           RejectReason = "internal"
)

// AuthResult is the outcome of an authentication strategy: either an
// authenticated identity or a rejection with a reason, never both.
type AuthResult struct {
	identity *User
	reason   RejectReason
	cause    error
}

// Authenticated builds a successful result for u.
func Authenticated(u *User) AuthResult {
	return AuthResult{identity: u}
}

// Rejected builds a failed result. cause is only kept for ReasonInternal,
// where it carries the underlying store error for logging.
func Rejected(reason RejectReason, cause error) AuthResult {
	if reason == ReasonNone {
		reason = ReasonInternal
	}
	r := AuthResult{reason: reason}
	if reason == ReasonInternal {
		r.cause = cause
	}
	return r
}

// OK reports whether an identity was established.
func (r AuthResult) OK() bool {
	return r.identity != nil
}

// Identity returns the authenticated user, or nil on rejection.
func (r AuthResult) Identity() *User {
	return r.identity
}

// Reason returns the rejection reason, or ReasonNone on success.
func (r AuthResult) Reason() RejectReason {
	return r.reason
}

// Err maps the result onto the domain error taxonomy. It returns nil for an
// authenticated result.
func (r AuthResult) Err() error {
	if r.OK() {
		return nil
	}
	switch r.reason {
	case ReasonNotFound:
		return ErrUserNotFound
	case ReasonInvalidCredentials:
		return ErrInvalidCredentials
	case ReasonInvalidToken:
		return ErrInvalidToken
	case ReasonUnknownIdentity:
		return ErrUnknownIdentity
	case ReasonMissingCredentials:
		return ErrMissingCredentials
	}
	if r.cause != nil {
		return errors.Join(ErrStoreUnavailable, r.cause)
	}
	return ErrStoreUnavailable
}
