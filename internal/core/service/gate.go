package service

import (
	"github.com/openforum/forum-api/internal/core/domain"
)

// Authorize is the authorization gate. It turns an authentication result
// into either the identity allowed to proceed or an error:
//
//	rejected                        -> the rejection's 401/500 error
//	authenticated, inactive         -> domain.ErrAccountInactive (403)
//	authenticated, role not allowed -> domain.ErrForbidden (403)
//
// An empty allowed set only requires an active identity.
func Authorize(result domain.AuthResult, allowed ...domain.Role) (*domain.User, error) {
	if !result.OK() {
		return nil, result.Err()
	}
	user := result.Identity()
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	if len(allowed) == 0 {
		return user, nil
	}
	for _, r := range allowed {
		if user.Role == r {
			return user, nil
		}
	}
	return nil, domain.ErrForbidden
}

// RolesAtLeast lists every role ranking at or above min.
func RolesAtLeast(min domain.Role) []domain.Role {
	var out []domain.Role
	for _, r := range domain.Roles() {
		if r.AtLeast(min) {
			out = append(out, r)
		}
	}
	return out
}
