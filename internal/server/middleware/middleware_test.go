package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/service"
	"github.com/foliohq/folio/internal/store"
)

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	st, err := store.New(store.Options{})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	auth, err := service.NewAuthService(st, service.Config{JWTSecret: "test-secret"}, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return auth
}

// ---------------------------------------------------------------------------
// Authenticate middleware
// ---------------------------------------------------------------------------

func TestAuthenticateValidToken(t *testing.T) {
	auth := newTestAuthService(t)
	token, err := auth.IssueToken(7, "admin@portfolio.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var seen *Principal
	handler := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/admin/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen == nil {
		t.Fatal("expected principal in context")
	}
	if seen.AdminID != 7 || seen.Email != "admin@portfolio.com" || seen.Role != model.RoleAdmin {
		t.Errorf("unexpected principal: %+v", seen)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	auth := newTestAuthService(t)

	handler := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run without credentials")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	auth := newTestAuthService(t)

	handler := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run with a bad token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}

	var body model.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Code == "token_expired" {
		t.Error("malformed token must not report token_expired")
	}
}

func TestAuthenticateExpiredTokenIsDistinguishable(t *testing.T) {
	st, err := store.New(store.Options{})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// Issue with a service whose TTL is tiny but positive, then verify after
	// the window has passed.
	issuer, err := service.NewAuthService(st, service.Config{JWTSecret: "test-secret", TokenTTL: time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	token, err := issuer.IssueToken(1, "admin@portfolio.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	handler := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run with an expired token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body model.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Code != "token_expired" {
		t.Errorf("expected token_expired code, got %q", body.Code)
	}
}

// ---------------------------------------------------------------------------
// RequireAdmin middleware
// ---------------------------------------------------------------------------

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), AuthPrincipalKey, &Principal{AdminID: 1, Role: model.RoleAdmin})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.WithContext(ctx))

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestRequireAdminBlocksOtherRoles(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run for non-admin role")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	ctx := context.WithValue(req.Context(), AuthPrincipalKey, &Principal{AdminID: 1, Role: "viewer"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.WithContext(ctx))

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestRequireAdminBlocksUnauthenticated(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run unauthenticated")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// RequestID middleware
// ---------------------------------------------------------------------------

func TestRequestIDGenerated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("expected request ID in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if id := rr.Header().Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("expected UUID-length request ID header, got %q", id)
	}
}

func TestRequestIDPreservesClientID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetRequestID(r.Context()); got != "client-supplied-id" {
			t.Errorf("expected client ID in context, got %q", got)
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Errorf("expected client ID echoed, got %q", got)
	}
}

func TestGetRequestIDBareContext(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("expected empty ID from bare context, got %q", id)
	}
}
