package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func serveLimited(l *stubLimiter) (*httptest.ResponseRecorder, bool) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:4321"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := RateLimit("login", l, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRateLimit_Allows(t *testing.T) {
	l := &stubLimiter{allow: true}
	rec, called := serveLimited(l)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	if len(l.keys) != 1 || l.keys[0] != "login:203.0.113.7" {
		t.Fatalf("unexpected keys: %v", l.keys)
	}
}

func TestRateLimit_Refuses(t *testing.T) {
	rec, called := serveLimited(&stubLimiter{allow: false})

	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rec, called := serveLimited(&stubLimiter{allow: true, err: errors.New("redis down")})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", rec.Code)
	}
}
