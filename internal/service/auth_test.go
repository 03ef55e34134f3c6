package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

func newTestAuth(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	st, err := store.New(store.Options{})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	auth, err := NewAuthService(st, Config{
		JWTSecret:        "test-secret-key",
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return auth, st
}

func createTestAdmin(t *testing.T, st *store.Store, email, password string, active bool) *model.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := &model.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test Admin",
		IsActive:     active,
	}
	if err := st.CreateAdmin(context.Background(), admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	st, _ := store.New(store.Options{})
	defer st.Close()

	if _, err := NewAuthService(st, Config{}, nil); err == nil {
		t.Error("expected error for missing jwt secret")
	}
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()
	createTestAdmin(t, st, "admin@portfolio.com", "correct horse", true)

	admin, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "correct horse")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if admin.FailedLoginAttempts != 0 || admin.LockedUntil != nil {
		t.Errorf("expected reset lockout state, got %+v", admin)
	}
	if admin.LastLoginAt == nil {
		t.Error("expected last login timestamp")
	}
}

func TestVerifyCredentialsCaseInsensitiveEmail(t *testing.T) {
	auth, st := newTestAuth(t)
	createTestAdmin(t, st, "admin@portfolio.com", "pw12345678", true)

	if _, err := auth.VerifyCredentials(context.Background(), "ADMIN@Portfolio.COM", "pw12345678"); err != nil {
		t.Errorf("expected case-insensitive email match, got %v", err)
	}
}

func TestVerifyCredentialsUnknownEmail(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.VerifyCredentials(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestVerifyCredentialsWrongPasswordIncrementsCounter(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()
	admin := createTestAdmin(t, st, "admin@portfolio.com", "right", true)

	_, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	got, _ := st.GetAdminByID(ctx, admin.ID)
	if got.FailedLoginAttempts != 1 {
		t.Errorf("expected 1 failed attempt, got %d", got.FailedLoginAttempts)
	}
	if got.LockedUntil != nil {
		t.Errorf("expected no lock after a single failure, got %v", got.LockedUntil)
	}
}

func TestVerifyCredentialsEmptyInputs(t *testing.T) {
	auth, st := newTestAuth(t)
	createTestAdmin(t, st, "admin@portfolio.com", "pw", true)

	if _, err := auth.VerifyCredentials(context.Background(), "admin@portfolio.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.VerifyCredentials(context.Background(), "", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLockoutAfterThresholdEvenWithCorrectPassword(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()
	admin := createTestAdmin(t, st, "admin@portfolio.com", "right", true)

	for i := 0; i < 5; i++ {
		if _, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	got, _ := st.GetAdminByID(ctx, admin.ID)
	if got.FailedLoginAttempts != 5 {
		t.Errorf("expected 5 failed attempts, got %d", got.FailedLoginAttempts)
	}
	if got.LockedUntil == nil {
		t.Fatal("expected account locked after 5 failures")
	}

	// The sixth attempt with the correct password must still be refused.
	_, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "right")
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

func TestLockExpiryAllowsLoginAndResets(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()
	admin := createTestAdmin(t, st, "admin@portfolio.com", "right", true)

	for i := 0; i < 5; i++ {
		auth.VerifyCredentials(ctx, "admin@portfolio.com", "wrong")
	}
	if _, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "right"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected locked before expiry, got %v", err)
	}

	// Jump the clock past the lock window.
	auth.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	got, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "right")
	if err != nil {
		t.Fatalf("expected success after lock expiry, got %v", err)
	}
	if got.FailedLoginAttempts != 0 || got.LockedUntil != nil {
		t.Errorf("expected reset state after successful login, got %+v", got)
	}

	stored, _ := st.GetAdminByID(ctx, admin.ID)
	if stored.FailedLoginAttempts != 0 || stored.LockedUntil != nil {
		t.Errorf("expected persisted reset, got attempts=%d lock=%v", stored.FailedLoginAttempts, stored.LockedUntil)
	}
}

func TestWrongPasswordAfterLockExpiryReArmsLock(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()
	admin := createTestAdmin(t, st, "admin@portfolio.com", "right", true)

	for i := 0; i < 5; i++ {
		auth.VerifyCredentials(ctx, "admin@portfolio.com", "wrong")
	}

	auth.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	if _, err := auth.VerifyCredentials(ctx, "admin@portfolio.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials after expiry, got %v", err)
	}

	got, _ := st.GetAdminByID(ctx, admin.ID)
	if got.FailedLoginAttempts != 6 {
		t.Errorf("expected counter 6, got %d", got.FailedLoginAttempts)
	}
	if got.LockedUntil == nil {
		t.Error("expected lock re-armed by post-expiry failure")
	}
}

func TestVerifyCredentialsDeactivatedAccount(t *testing.T) {
	auth, st := newTestAuth(t)
	createTestAdmin(t, st, "admin@portfolio.com", "right", false)

	_, err := auth.VerifyCredentials(context.Background(), "admin@portfolio.com", "right")
	if !errors.Is(err, ErrAccountDeactivated) {
		t.Errorf("expected ErrAccountDeactivated, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

func TestTokenRoundTrip(t *testing.T) {
	auth, _ := newTestAuth(t)

	token, err := auth.IssueToken(42, "admin@portfolio.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.AdminID != 42 {
		t.Errorf("AdminID: got %d, want 42", claims.AdminID)
	}
	if claims.Email != "admin@portfolio.com" {
		t.Errorf("Email: got %q", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("Role: got %q", claims.Role)
	}
}

func TestTokenExpiredIsDistinguishable(t *testing.T) {
	auth, _ := newTestAuth(t)

	token, err := auth.IssueToken(1, "admin@portfolio.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Verify well past the 7-day TTL.
	auth.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err = auth.VerifyToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	auth, _ := newTestAuth(t)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := auth.VerifyToken(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestTokenWrongKeyIsMalformedNotExpired(t *testing.T) {
	auth, st := newTestAuth(t)

	other, err := NewAuthService(st, Config{JWTSecret: "a-different-secret"}, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	token, err := other.IssueToken(1, "admin@portfolio.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed for wrong key, got %v", err)
	}
}
