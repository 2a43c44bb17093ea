package ports

import (
	"context"

	"github.com/openforum/forum-api/internal/core/domain"
)

// ActivityRepository appends audit records.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}

// ActivityRecorder accepts audit records without blocking the caller.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

// RateLimiter counts hits per key inside a fixed window.
type RateLimiter interface {
	// Allow reports whether another hit for key fits in the window. Backends
	// fail open: an error means the hit was allowed.
	Allow(ctx context.Context, key string) (bool, error)
}
