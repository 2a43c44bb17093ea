package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
)

type stubActivityRepo struct {
	inserted []*domain.Activity
	err      error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, a)
	return nil
}

func TestActivityService_Process(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.Activity{Type: domain.ActivityLoginFailed, Identifier: "a@x.com"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Identifier != "a@x.com" {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
}

func TestActivityService_Process_Errors(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.Activity{}); err == nil {
		t.Fatalf("expected error for missing type")
	}

	repo.err = errStoreDown
	err := svc.Process(context.Background(), domain.Activity{Type: domain.ActivityRegistered})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
