package model

import "time"

// RoleAdmin is the only role Folio issues today. The field exists on Admin
// and in token claims so a second trust class can be added without a schema
// or token format change.
const RoleAdmin = "admin"

// Admin represents an administrative account that can manage portfolio
// content through the admin API. Passwords are stored as bcrypt hashes and
// are never serialized. The failed-attempt counter and lock timestamp drive
// the progressive lockout defense; whether an account is currently locked is
// computed from these two fields, not stored (see service.LockState).
type Admin struct {
	ID                  int64      `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Name                string     `json:"name" db:"name"`
	Role                string     `json:"role" db:"role"`
	IsActive            bool       `json:"is_active" db:"is_active"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockedUntil         *time.Time `json:"-" db:"locked_until"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Public returns the fields of the account that are safe to include in
// response payloads: identity and role, nothing about credentials or lockout
// bookkeeping.
func (a *Admin) Public() PublicAdmin {
	return PublicAdmin{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}

// PublicAdmin is the response-safe projection of an Admin.
type PublicAdmin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
