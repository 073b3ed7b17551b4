package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func newTestTokenService(t *testing.T, opts ...TokenOption) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, opts...)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, expiresAt, err := svc.Issue(42, "u1@x.com", []string{"USER", "ADMIN", "USER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	payload, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if payload.UserID != 42 {
		t.Fatalf("unexpected user id: %d", payload.UserID)
	}
	if payload.Email != "u1@x.com" {
		t.Fatalf("unexpected email: %s", payload.Email)
	}
	if len(payload.Roles) != 2 || payload.Roles[0] != "USER" || payload.Roles[1] != "ADMIN" {
		t.Fatalf("roles not preserved in order: %v", payload.Roles)
	}
	if !payload.ExpiresAt.After(payload.IssuedAt) {
		t.Fatalf("expiry %v not after issued-at %v", payload.ExpiresAt, payload.IssuedAt)
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := newTestTokenService(t, WithTTL(time.Hour))
	token, _, err := issued.Issue(7, "u@x.com", []string{"USER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	later := newTestTokenService(t, WithClock(func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}))
	if _, err := later.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue(7, "u@x.com", []string{"USER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue(7, "u@x.com", []string{"USER"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := NewTokenService("another-secret")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestTokenService(t)
	for _, token := range []string{"", "garbage", "a.b", "a.b.c", "   "} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestIssueRequiresUserID(t *testing.T) {
	svc := newTestTokenService(t)
	if _, _, err := svc.Issue(0, "u@x.com", []string{"USER"}); err == nil {
		t.Fatal("expected error for zero user id")
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewTokenService("   "); err == nil {
		t.Fatal("expected error for blank secret")
	}
}
