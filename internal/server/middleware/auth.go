package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/service"
)

type contextKeyAuth string

// AuthPrincipalKey is the context key for the authenticated principal.
const AuthPrincipalKey contextKeyAuth = "auth_principal"

// Principal is the verified identity attached to an authenticated request.
// Downstream handlers consume only this; they never touch the credential
// store or token service directly.
type Principal struct {
	AdminID int64
	Email   string
	Role    string
}

// Authenticate returns an HTTP middleware that validates the Authorization
// Bearer token on the request. An expired token is rejected with a
// machine-readable "token_expired" code, distinct from the generic 401, so
// the dashboard can redirect to login instead of retrying blindly.
func Authenticate(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required", "")
				return
			}

			claims, err := authSvc.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Session expired, please log in again", "token_expired")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Invalid token", "")
				return
			}

			principal := &Principal{
				AdminID: claims.AdminID,
				Email:   claims.Email,
				Role:    claims.Role,
			}
			ctx := context.WithValue(r.Context(), AuthPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns an HTTP middleware that enforces the admin role on the
// verified claims. It must run after Authenticate.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil || principal.Role != model.RoleAdmin {
				writeAuthError(w, http.StatusForbidden, "Admin access required", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the authenticated principal from the context, or nil
// for an unauthenticated request.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(AuthPrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

// writeAuthError writes the standard failure envelope. JSON is constructed
// by hand to avoid an import cycle with the handler package.
func writeAuthError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := `{"success":false,"message":"` + message + `"`
	if code != "" {
		body += `,"code":"` + code + `"`
	}
	body += `}`
	w.Write([]byte(body))
}
