package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// ThreadStats is a read-only view over thread storage used to decorate
// users and categories with counts. Thread storage itself lives elsewhere.
type ThreadStats interface {
	CountByAuthor(ctx context.Context, userID string) (int64, error)
	CountRepliesByAuthor(ctx context.Context, userID string) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	RecentByAuthor(ctx context.Context, userID string, limit int) ([]domain.ThreadSummary, error)
}
