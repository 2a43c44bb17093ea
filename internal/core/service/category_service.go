package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

const countConcurrency = 8

type CategoryService struct {
	repo    ports.CategoryRepository
	threads ports.ThreadStats
	log     zerolog.Logger
}

var _ ports.CategoryService = (*CategoryService)(nil)

func NewCategoryService(repo ports.CategoryRepository, threads ports.ThreadStats, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, threads: threads, log: log}
}

// List returns active categories, sorted by name, each with its thread count.
func (s *CategoryService) List(ctx context.Context) ([]ports.CategoryView, error) {
	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.CategoryView, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)
	for i, c := range categories {
		g.Go(func() error {
			n, err := s.threads.CountByCategory(gctx, c.ID)
			if err != nil {
				return err
			}
			views[i] = ports.CategoryView{Category: c, ThreadCount: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*ports.CategoryView, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := s.threads.CountByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &ports.CategoryView{Category: c, ThreadCount: n}, nil
}

// Create adds a category. Names are unique regardless of case.
func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       color,
		IsActive:    true,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, update domain.CategoryUpdate) (*domain.Category, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, update)
}

// Delete hides a category; its threads are kept.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("category_id", id).Msg("category deactivated")
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return domain.ErrCategoryExists
	case err == nil, errors.Is(err, domain.ErrCategoryNotFound):
		return nil
	default:
		return err
	}
}
