package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// CategoryRepository persists forum categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// FindByName matches name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	ListActive(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id string, update domain.CategoryUpdate) (*domain.Category, error)
	Deactivate(ctx context.Context, id string) error
}
