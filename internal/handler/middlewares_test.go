package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	h.auth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", rec.Code)
	}
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6cHc=")

	h.auth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	h.auth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)
	user := &domain.User{Email: "alice@example.com", Role: domain.RoleEmployee}

	ss, _, err := h.issueToken(user)
	if err != nil {
		t.Fatalf("issueToken error: %v", err)
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		sub := r.Context().Value(SubCtxKey).(string)
		if sub != user.Email {
			t.Fatalf("subject mismatch: got %q want %q", sub, user.Email)
		}
		role := r.Context().Value(RoleCtxKey).(string)
		if role != string(user.Role) {
			t.Fatalf("role mismatch: got %q want %q", role, user.Role)
		}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+ss)

	h.auth(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler was not called for a valid token")
	}
}

func TestRequiredRole_Forbidden(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)
	employee := &domain.User{Email: "alice@example.com", Role: domain.RoleEmployee}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/salary-slips", nil)
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, employee))

	h.RequiredRole([]domain.Role{domain.RoleAdmin})(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee on admin route, got %d", rec.Code)
	}
}

func TestRequiredRole_Allowed(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)
	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/salary-slips", nil)
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, admin))

	h.RequiredRole([]domain.Role{domain.RoleAdmin})(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler was not called for an admin")
	}
}
