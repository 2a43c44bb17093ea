package domain

import (
	"strings"
	"time"
)

// User models a registered forum account (the authenticated identity).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the view of a user that may be shown to anyone, including
// unauthenticated callers. It never carries the email or the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips private fields from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail lower-cases and trims an email so that lookups and the
// unique index treat addresses case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the optional fields a user may change on their own
// profile. Nil means "leave unchanged".
type ProfileUpdate struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Bio == nil && p.Avatar == nil
}

// UserStats summarises a user's participation.
type UserStats struct {
	ThreadCount int64 `json:"threadCount"`
	ReplyCount  int64 `json:"replyCount"`
}

// ThreadSummary is the lightweight thread view shown on a user's page.
type ThreadSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
