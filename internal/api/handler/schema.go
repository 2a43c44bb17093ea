package handler

import (
	"time"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

// errorResponse documents the failure envelope for swagger.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ── auth ─────────────────────────────────────────────────────────────────────

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *domain.User `json:"user"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

// ── users ────────────────────────────────────────────────────────────────────

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio      *string `json:"bio"      validate:"omitempty,max=500"`
	Avatar   *string `json:"avatar"   validate:"omitempty,url"`
}

func (r updateProfileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{Username: r.Username, Bio: r.Bio, Avatar: r.Avatar}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

type changeStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type listUsersQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

type profileResponse struct {
	User  *domain.User     `json:"user"`
	Stats domain.UserStats `json:"stats"`
}

type publicProfileResponse struct {
	User          domain.PublicUser      `json:"user"`
	Stats         domain.UserStats       `json:"stats"`
	RecentThreads []domain.ThreadSummary `json:"recentThreads"`
}

type userResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Total int64          `json:"total"`
	Limit int            `json:"limit"`
}

func toPublicProfileResponse(v *ports.PublicProfileView) publicProfileResponse {
	threads := v.RecentThreads
	if threads == nil {
		threads = []domain.ThreadSummary{}
	}
	return publicProfileResponse{User: v.User, Stats: v.Stats, RecentThreads: threads}
}

// ── categories ───────────────────────────────────────────────────────────────

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=200"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Color       *string `json:"color"       validate:"omitempty,hexcolor"`
}

func (r updateCategoryRequest) toUpdate() domain.CategoryUpdate {
	return domain.CategoryUpdate{Name: r.Name, Description: r.Description, Color: r.Color}
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	ThreadCount int64     `json:"threadCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(c *domain.Category, threads int64) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		ThreadCount: threads,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
