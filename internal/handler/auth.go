package handler

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/server/middleware"
	"github.com/foliohq/folio/internal/service"
	"github.com/foliohq/folio/internal/store"
)

// AuthHandler serves the admin session endpoints: login, logout, the current
// account, and the auth event trail. It is the only handler that can mint a
// token; everything else on the admin surface merely verifies one.
type AuthHandler struct {
	store   *store.Store
	authSvc *service.AuthService
	audit   *audit.Recorder
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(st *store.Store, authSvc *service.AuthService, rec *audit.Recorder) *AuthHandler {
	return &AuthHandler{store: st, authSvc: authSvc, audit: rec}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the admin and returns a session token. Each rejection
// reason maps to its own status code so the dashboard can render the right
// message without guessing: 423 locked, 403 deactivated, 401 bad credentials.
// POST /api/v1/admin/session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sourceIP := ipString(middleware.SourceIP(r))

	admin, err := h.authSvc.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountLocked):
			h.audit.Record(r.Context(), audit.EventLoginLocked, req.Email, sourceIP)
			writeErrorCode(w, http.StatusLocked,
				"Account temporarily locked after too many failed attempts, try again later", "account_locked")
		case errors.Is(err, service.ErrAccountDeactivated):
			h.audit.Record(r.Context(), audit.EventLoginInactive, req.Email, sourceIP)
			writeError(w, http.StatusForbidden, "Account is deactivated")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.audit.Record(r.Context(), audit.EventLoginFailed, req.Email, sourceIP)
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			writeError(w, http.StatusInternalServerError, "Authentication error")
		}
		return
	}

	token, err := h.authSvc.IssueToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	h.audit.Record(r.Context(), audit.EventLoginSucceeded, admin.Email, sourceIP)

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Success:   true,
		Admin:     admin.Public(),
		Token:     token,
		ExpiresIn: int(h.authSvc.TokenTTL().Seconds()),
	})
}

// Logout acknowledges a client-side session discard. Tokens are stateless,
// so there is nothing to invalidate server-side.
// DELETE /api/v1/admin/session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Session ended, discard the token client-side",
	})
}

// Account returns the authenticated admin's public profile, including the
// last login timestamp for audit display.
// GET /api/v1/admin/account
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	admin, err := h.store.GetAdminByID(r.Context(), principal.AdminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}

	writeData(w, http.StatusOK, struct {
		model.PublicAdmin
		LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	}{admin.Public(), admin.LastLoginAt}, nil)
}

// AuditTrail returns the most recent auth events, newest first.
// GET /api/v1/admin/audit
func (h *AuthHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := clampInt(queryInt(r, "limit", 50), 1, 500)

	events, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load audit trail")
		return
	}

	count := len(events)
	writeData(w, http.StatusOK, events, &count)
}

func ipString(ip net.IP) string {
	if ip == nil {
		return ""
	}
	return ip.String()
}
