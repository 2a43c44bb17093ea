package domain

import "time"

// Category groups discussion threads.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#007BFF"

// CategoryUpdate carries the optional fields of a category edit.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
}
