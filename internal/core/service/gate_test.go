package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	active := &domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true}
	admin := &domain.User{ID: "u2", Role: domain.RoleAdmin, IsActive: true}
	banned := &domain.User{ID: "u3", Role: domain.RoleAdmin, IsActive: false}

	cases := []struct {
		name    string
		result  domain.AuthResult
		allowed []domain.Role
		want    error
	}{
		{"any active identity", domain.Authenticated(active), nil, nil},
		{"role allowed", domain.Authenticated(admin), []domain.Role{domain.RoleAdmin}, nil},
		{"role not allowed", domain.Authenticated(active), []domain.Role{domain.RoleAdmin}, domain.ErrForbidden},
		{"inactive beats role", domain.Authenticated(banned), []domain.Role{domain.RoleAdmin}, domain.ErrAccountInactive},
		{"rejected token", domain.Rejected(domain.ReasonInvalidToken, nil), nil, domain.ErrInvalidToken},
		{"store down", domain.Rejected(domain.ReasonInternal, errStoreDown), nil, domain.ErrStoreUnavailable},
	}
	for _, tc := range cases {
		user, err := Authorize(tc.result, tc.allowed...)
		if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if err != nil && user != nil {
			t.Fatalf("%s: refusal must not return an identity", tc.name)
		}
		if err == nil && user == nil {
			t.Fatalf("%s: expected identity", tc.name)
		}
	}
}

func TestRolesAtLeast(t *testing.T) {
	got := RolesAtLeast(domain.RoleModerator)
	if len(got) != 2 || got[0] != domain.RoleModerator || got[1] != domain.RoleAdmin {
		t.Fatalf("unexpected roles: %v", got)
	}
	if len(RolesAtLeast(domain.RoleUser)) != 3 {
		t.Fatalf("expected every role at or above user")
	}
}

func TestGate_ObservesChangesAfterIssuance(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u1", Role: domain.RoleUser, IsActive: true})
	tokens := newTestTokens(t0)
	strategy := NewTokenStrategy(repo, tokens, zerolog.Nop())
	token, _ := tokens.Issue(&domain.User{ID: "u1"})
	ctx := context.Background()

	if _, err := Authorize(strategy.Resolve(ctx, token), domain.RoleAdmin); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden before promotion, got %v", err)
	}

	_, _ = repo.UpdateRole(ctx, "u1", domain.RoleAdmin)
	if _, err := Authorize(strategy.Resolve(ctx, token), domain.RoleAdmin); err != nil {
		t.Fatalf("expected promotion visible with the same token, got %v", err)
	}

	_, _ = repo.UpdateStatus(ctx, "u1", false)
	if _, err := Authorize(strategy.Resolve(ctx, token)); err != domain.ErrAccountInactive {
		t.Fatalf("expected deactivated account refused, got %v", err)
	}
}
