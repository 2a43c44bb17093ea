package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

// ActivityService persists audit records handed over by the dispatcher.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Process writes a single record.
func (s *ActivityService) Process(ctx context.Context, a domain.Activity) error {
	if a.Type == "" {
		return fmt.Errorf("process activity: missing type")
	}
	if err := s.repo.Insert(ctx, &a); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}
	s.log.Debug().
		Str("type", string(a.Type)).
		Str("user_id", a.UserID).
		Msg("activity recorded")
	return nil
}
