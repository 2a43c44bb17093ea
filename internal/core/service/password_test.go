package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/openforum/forum-api/internal/core/domain"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	ok, err := h.Verify("secret1", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("secret2", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret1")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestPasswordHasher_CorruptHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-bcrypt-hash"} {
		ok, err := h.Verify("secret1", stored)
		if ok {
			t.Fatalf("%q: corrupt hash must never match", stored)
		}
		if err == nil {
			t.Fatalf("%q: expected error for corrupt hash", stored)
		}
	}
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	if _, err := NewPasswordHasher(bcrypt.MinCost).Hash(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestPasswordHasher_TooLongCandidateIsMismatch(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, _ := h.Hash("secret1")

	ok, err := h.Verify(strings.Repeat("a", 100), hash)
	if ok || err != nil {
		t.Fatalf("expected plain mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	if got := NewPasswordHasher(100).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(12).cost; got != 12 {
		t.Fatalf("expected cost 12, got %d", got)
	}
}

func TestPasswordHasher_LimitCountsBytes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	// 40 runes, 80 bytes.
	if _, err := h.Hash(strings.Repeat("é", 40)); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 bytes must be accepted, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("é", 36)); err != nil {
		t.Fatalf("72 bytes of multi-byte runes must be accepted, got %v", err)
	}
}
