package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/config"
	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func newTestHandler(t *testing.T, secret string, expiration int) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.Expiration = expiration

	h, err := NewHandler(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewHandler error: %v", err)
	}
	return h
}

func TestIssueAndParseToken_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)
	user := &domain.User{
		Email: "alice@example.com",
		Role:  domain.RoleEmployee,
	}

	ss, expiration, err := h.issueToken(user)
	if err != nil {
		t.Fatalf("issueToken error: %v", err)
	}
	if !expiration.After(time.Now()) {
		t.Fatalf("expiration should be in the future, got %v", expiration)
	}

	claims, err := h.parseToken(ss)
	if err != nil {
		t.Fatalf("parseToken error: %v", err)
	}
	if claims.Subject != user.Email {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, user.Email)
	}
	if claims.Role != string(domain.RoleEmployee) {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, domain.RoleEmployee)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", -1)
	user := &domain.User{
		Email: "bob@example.com",
		Role:  domain.RoleAdmin,
	}

	ss, _, err := h.issueToken(user)
	if err != nil {
		t.Fatalf("issueToken error: %v", err)
	}

	if _, err := h.parseToken(ss); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestHandler(t, "right-secret", 3600)
	verifier := newTestHandler(t, "wrong-secret", 3600)

	ss, _, err := issuer.issueToken(&domain.User{Email: "carol@example.com", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issueToken error: %v", err)
	}

	if _, err := verifier.parseToken(ss); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	if _, err := h.parseToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestSignup_InvalidRole(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	body := strings.NewReader(`{"email":"alice@example.com","password":"pw123","role":"superuser"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signup", body)

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid role, got %d", rec.Code)
	}
}

func TestLogin_ValidationError(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "super-secret", 3600)

	body := strings.NewReader(`{"email":"not-an-email","password":"pw123"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", body)

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", rec.Code)
	}
}
