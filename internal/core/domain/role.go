package domain

// Role is the coarse permission tier attached to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleAdmin:     2,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above min in the user < moderator
// < admin hierarchy. Unknown roles never satisfy the check.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[min]
	if !ok {
		return false
	}
	return have >= need
}

// ParseRole converts s into a Role, returning ErrInvalidRole for anything
// outside the known set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Roles returns every role in ascending order of privilege.
func Roles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}
