package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/openforum/forum-api/internal/core/domain"
)

var errStoreDown = errors.New("connection refused")

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error // returned by every call when set
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) update(id string, fn func(u *domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	fn(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, p domain.ProfileUpdate) (*domain.User, error) {
	return r.update(id, func(u *domain.User) {
		if p.Username != nil {
			u.Username = *p.Username
		}
		if p.Bio != nil {
			u.Bio = *p.Bio
		}
		if p.Avatar != nil {
			u.Avatar = *p.Avatar
		}
	})
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	return r.update(id, func(u *domain.User) { u.Role = role })
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id string, active bool) (*domain.User, error) {
	return r.update(id, func(u *domain.User) { u.IsActive = active })
}

func (r *stubUserRepo) ListRecent(_ context.Context, limit int) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	out := make([]*domain.User, 0, limit)
	for _, u := range r.users {
		if len(out) == limit {
			break
		}
		out = append(out, cloneUser(u))
	}
	return out, int64(len(r.users)), nil
}

type stubRecorder struct {
	mu      sync.Mutex
	records []domain.Activity
}

func (s *stubRecorder) Record(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, a)
}

func (s *stubRecorder) last() domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return domain.Activity{}
	}
	return s.records[len(s.records)-1]
}

type stubThreadStats struct {
	byAuthor   map[string]int64
	replies    map[string]int64
	byCategory map[string]int64
	recent     map[string][]domain.ThreadSummary
	err        error
	limits     []int
}

func (s *stubThreadStats) CountByAuthor(_ context.Context, id string) (int64, error) {
	return s.byAuthor[id], s.err
}

func (s *stubThreadStats) CountRepliesByAuthor(_ context.Context, id string) (int64, error) {
	return s.replies[id], s.err
}

func (s *stubThreadStats) CountByCategory(_ context.Context, id string) (int64, error) {
	return s.byCategory[id], s.err
}

func (s *stubThreadStats) RecentByAuthor(_ context.Context, id string, limit int) ([]domain.ThreadSummary, error) {
	s.limits = append(s.limits, limit)
	return s.recent[id], s.err
}

type stubCategoryRepo struct {
	mu     sync.Mutex
	cats   map[string]*domain.Category
	nextID int
}

func newStubCategoryRepo(cats ...*domain.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{cats: make(map[string]*domain.Category)}
	for _, c := range cats {
		clone := *c
		r.cats[c.ID] = &clone
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *c
	created.ID = "c" + strconv.Itoa(r.nextID)
	stored := created
	r.cats[created.ID] = &stored
	return &created, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cats {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) ListActive(_ context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Category
	for _, c := range r.cats {
		if c.IsActive {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id string, u domain.CategoryUpdate) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	c.IsActive = false
	return nil
}
