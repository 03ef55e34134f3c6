package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foliohq/folio/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{
		Email:        "admin@portfolio.com",
		PasswordHash: "$2a$10$fakehash",
		Name:         "Admin",
		IsActive:     true,
	}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.ID == 0 {
		t.Error("expected non-zero ID after insert")
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected default role %q, got %q", model.RoleAdmin, admin.Role)
	}

	got, err := s.GetAdminByEmail(ctx, "admin@portfolio.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if got.ID != admin.ID || got.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("unexpected admin: %+v", got)
	}
	if got.FailedLoginAttempts != 0 {
		t.Errorf("expected zero failed attempts, got %d", got.FailedLoginAttempts)
	}
}

func TestGetAdminByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "Admin@Portfolio.com", PasswordHash: "h", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	got, err := s.GetAdminByEmail(ctx, "ADMIN@PORTFOLIO.COM")
	if err != nil {
		t.Fatalf("GetAdminByEmail with different case: %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("expected admin %d, got %d", admin.ID, got.ID)
	}
}

func TestGetAdminNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAdminByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = s.GetAdminByID(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestRecordFailedLoginPersistsLock(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "a@b.com", PasswordHash: "h", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	lockedUntil := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second)
	if err := s.RecordFailedLogin(ctx, admin.ID, 5, &lockedUntil); err != nil {
		t.Fatalf("RecordFailedLogin: %v", err)
	}

	got, err := s.GetAdminByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetAdminByID: %v", err)
	}
	if got.FailedLoginAttempts != 5 {
		t.Errorf("expected 5 failed attempts, got %d", got.FailedLoginAttempts)
	}
	if got.LockedUntil == nil {
		t.Fatal("expected locked_until to be set")
	}
	if !got.LockedUntil.Equal(lockedUntil) {
		t.Errorf("locked_until mismatch: got %v, want %v", got.LockedUntil, lockedUntil)
	}
}

func TestRecordSuccessfulLoginResetsState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "a@b.com", PasswordHash: "h", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	lockedUntil := time.Now().UTC().Add(15 * time.Minute)
	if err := s.RecordFailedLogin(ctx, admin.ID, 4, &lockedUntil); err != nil {
		t.Fatalf("RecordFailedLogin: %v", err)
	}
	if err := s.RecordSuccessfulLogin(ctx, admin.ID); err != nil {
		t.Fatalf("RecordSuccessfulLogin: %v", err)
	}

	got, err := s.GetAdminByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetAdminByID: %v", err)
	}
	if got.FailedLoginAttempts != 0 {
		t.Errorf("expected reset counter, got %d", got.FailedLoginAttempts)
	}
	if got.LockedUntil != nil {
		t.Errorf("expected cleared lock, got %v", got.LockedUntil)
	}
	if got.LastLoginAt == nil {
		t.Error("expected last_login_at to be set")
	}
}

func TestClearLock(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "a@b.com", PasswordHash: "h", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	lockedUntil := time.Now().UTC().Add(15 * time.Minute)
	if err := s.RecordFailedLogin(ctx, admin.ID, 5, &lockedUntil); err != nil {
		t.Fatalf("RecordFailedLogin: %v", err)
	}
	if err := s.ClearLock(ctx, admin.ID); err != nil {
		t.Fatalf("ClearLock: %v", err)
	}

	got, _ := s.GetAdminByID(ctx, admin.ID)
	if got.FailedLoginAttempts != 0 || got.LockedUntil != nil {
		t.Errorf("expected cleared lock state, got attempts=%d lock=%v", got.FailedLoginAttempts, got.LockedUntil)
	}
	if got.LastLoginAt != nil {
		t.Error("ClearLock must not stamp last_login_at")
	}
}

func TestSetAdminActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	admin := &model.Admin{Email: "a@b.com", PasswordHash: "h", IsActive: true}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if err := s.SetAdminActive(ctx, admin.ID, false); err != nil {
		t.Fatalf("SetAdminActive: %v", err)
	}

	got, _ := s.GetAdminByID(ctx, admin.ID)
	if got.IsActive {
		t.Error("expected account deactivated")
	}
}

func TestHasAnyAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	has, err := s.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if has {
		t.Error("expected no admins in fresh store")
	}

	s.CreateAdmin(ctx, &model.Admin{Email: "a@b.com", PasswordHash: "h", IsActive: true})

	has, err = s.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin: %v", err)
	}
	if !has {
		t.Error("expected admin to exist")
	}
}

func TestAuthEventTrail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ev := range []string{"login_failed", "login_failed", "login_succeeded"} {
		if err := s.InsertAuthEvent(ctx, &model.AuthEvent{Event: ev, Email: "a@b.com", SourceIP: "10.0.0.1"}); err != nil {
			t.Fatalf("InsertAuthEvent: %v", err)
		}
	}

	events, err := s.ListAuthEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListAuthEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first
	if events[0].Event != "login_succeeded" {
		t.Errorf("expected newest event first, got %q", events[0].Event)
	}
}
