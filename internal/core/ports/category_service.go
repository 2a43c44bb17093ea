package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// CategoryView is a category with its thread count.
type CategoryView struct {
	Category    *domain.Category
	ThreadCount int64
}

// CreateCategoryInput carries a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
	CreatedBy   string
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	List(ctx context.Context) ([]CategoryView, error)
	Get(ctx context.Context, id string) (*CategoryView, error)
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, update domain.CategoryUpdate) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
