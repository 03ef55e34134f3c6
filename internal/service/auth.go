package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// Credential and token failures. Each maps to exactly one HTTP status in the
// handler layer; none of them carries internal detail.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
)

// Config holds the process-wide auth settings, loaded once at startup and
// passed in explicitly so the service is testable with fake values.
type Config struct {
	JWTSecret        string
	TokenTTL         time.Duration // default 7 days
	MaxLoginAttempts int           // default 5
	LockoutDuration  time.Duration // default 15 minutes
}

func (c Config) withDefaults() Config {
	if c.TokenTTL <= 0 {
		c.TokenTTL = 7 * 24 * time.Hour
	}
	if c.MaxLoginAttempts <= 0 {
		c.MaxLoginAttempts = 5
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = 15 * time.Minute
	}
	return c
}

// AuthService verifies admin credentials with progressive lockout and issues
// and verifies the stateless session tokens that guard the admin API.
type AuthService struct {
	store  *store.Store
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService creates an AuthService. A missing signing key is a
// configuration error surfaced here so the process fails at startup rather
// than on the first login.
func NewAuthService(st *store.Store, cfg Config, logger *slog.Logger) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:  st,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    time.Now,
	}, nil
}

// TokenTTL returns the configured token validity window, echoed to clients
// as expiresIn.
func (s *AuthService) TokenTTL() time.Duration {
	return s.cfg.TokenTTL
}

// VerifyCredentials checks an email/password pair against the credential
// store, driving the lockout state machine. On success the returned account
// has its lockout fields already reset. Failures are one of
// ErrInvalidCredentials, ErrAccountLocked, or ErrAccountDeactivated; unknown
// email and wrong password are deliberately indistinguishable.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*model.Admin, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	now := s.now()

	// Lock wins over everything, including a correct password.
	if LockState(admin.FailedLoginAttempts, admin.LockedUntil, now) == StateLocked {
		return nil, ErrAccountLocked
	}

	if !admin.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		attempts, lockedUntil := ApplyFailedAttempt(admin.FailedLoginAttempts, now, s.cfg.MaxLoginAttempts, s.cfg.LockoutDuration)
		if perr := s.store.RecordFailedLogin(ctx, admin.ID, attempts, lockedUntil); perr != nil {
			// The attempt still fails; losing one counter increment is the
			// lesser harm compared to surfacing a storage error to the caller.
			s.logger.Error("failed to persist login failure", "admin_id", admin.ID, "error", perr)
		}
		if lockedUntil != nil {
			s.logger.Warn("admin account locked",
				"admin_id", admin.ID, "attempts", attempts, "locked_until", *lockedUntil)
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.store.RecordSuccessfulLogin(ctx, admin.ID); err != nil {
		return nil, fmt.Errorf("reset login state: %w", err)
	}
	admin.FailedLoginAttempts = 0
	admin.LockedUntil = nil
	lastLogin := now.UTC()
	admin.LastLoginAt = &lastLogin

	return admin, nil
}

// ---------------------------------------------------------------------------
// Session tokens
// ---------------------------------------------------------------------------

// TokenClaims is the signed claim set carried by a session token. Possession
// of a validly signed, unexpired token is the whole proof of authentication;
// there is no server-side session record.
type TokenClaims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a new HS256-signed session token for the given account.
// Reissuing simply produces another independently valid token; the old one
// stays valid until it expires.
func (s *AuthService) IssueToken(adminID int64, email, role string) (string, error) {
	now := s.now()
	claims := TokenClaims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			Issuer:    "folio",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken parses and validates a session token. Expiry is reported as
// ErrTokenExpired, distinct from ErrTokenMalformed, so the client can prompt
// for a fresh login instead of showing a generic failure.
func (s *AuthService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
