package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/foliohq/folio/internal/model"
)

// Options selects the backing database for the store. SQLite is the default
// and needs no DSN; Postgres and MySQL are supported for deployments that
// already run a database server.
type Options struct {
	Driver  string // "sqlite" (default), "postgres", "mysql"
	DSN     string // required for postgres and mysql
	DataDir string // sqlite only; empty means in-memory
}

// Store persists all Folio state: the admin account(s) with their lockout
// counters, portfolio content, contact messages, and the auth event trail.
type Store struct {
	db     *sqlx.DB
	driver string
}

// New opens the store and runs migrations. Queries are written with `?`
// placeholders and rebound per driver, so all three backends share one
// query set.
func New(opts Options) (*Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch driver {
	case "sqlite":
		var dsn string
		if opts.DataDir == "" {
			dsn = ":memory:?_journal_mode=WAL"
		} else {
			if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(opts.DataDir, "folio.db") + "?_journal_mode=WAL&_busy_timeout=5000"
		}
		db, err = sqlx.Connect("sqlite", dsn)
		if err == nil {
			db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
			_, err = db.Exec("PRAGMA foreign_keys = ON")
		}
	case "postgres":
		db, err = sqlx.Connect("pgx", opts.DSN)
	case "mysql":
		dsn := opts.DSN
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
		db, err = sqlx.Connect("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// insertID executes an INSERT written with `?` placeholders and returns the
// new row's id. Postgres has no LastInsertId, so the query grows a RETURNING
// clause there.
func (s *Store) insertID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		if err := s.db.GetContext(ctx, &id, s.db.Rebind(query+" RETURNING id"), args...); err != nil {
			return 0, err
		}
		return id, nil
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ---------------------------------------------------------------------------
// Admin accounts
// ---------------------------------------------------------------------------

// CreateAdmin inserts a new admin account. ID, CreatedAt, and UpdatedAt are
// populated after a successful insert.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if admin.Role == "" {
		admin.Role = model.RoleAdmin
	}

	const q = `INSERT INTO admins
		(email, password_hash, name, role, is_active, failed_login_attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`

	id, err := s.insertID(ctx, q,
		admin.Email, admin.PasswordHash, admin.Name, admin.Role, admin.IsActive,
		admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	admin.ID = id
	return nil
}

// GetAdminByEmail returns an admin by email address, matched
// case-insensitively. The returned record includes the password hash and
// lockout fields; callers must never serialize it directly.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	q := s.db.Rebind("SELECT * FROM admins WHERE LOWER(email) = LOWER(?)")
	if err := s.db.GetContext(ctx, &admin, q, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}

// GetAdminByID returns an admin by id.
func (s *Store) GetAdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	var admin model.Admin
	q := s.db.Rebind("SELECT * FROM admins WHERE id = ?")
	if err := s.db.GetContext(ctx, &admin, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts ordered by email.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.SelectContext(ctx, &admins, "SELECT * FROM admins ORDER BY email"); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// HasAnyAdmin reports whether at least one admin account exists, used for
// first-run detection.
func (s *Store) HasAnyAdmin(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admins"); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// RecordFailedLogin persists the outcome of a failed credential check: the
// new attempt counter and, when the threshold was crossed, the lock
// timestamp. The values are computed by the caller (service.ApplyFailedAttempt)
// so this write carries no policy of its own.
func (s *Store) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	now := time.Now().UTC()
	q := s.db.Rebind(`UPDATE admins
		SET failed_login_attempts = ?, locked_until = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, attempts, lockedUntil, now, id)
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	return checkOneRow(result, "record failed login")
}

// RecordSuccessfulLogin resets the lockout state and stamps last_login_at.
func (s *Store) RecordSuccessfulLogin(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	q := s.db.Rebind(`UPDATE admins
		SET failed_login_attempts = 0, locked_until = NULL, last_login_at = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, now, now, id)
	if err != nil {
		return fmt.Errorf("record successful login: %w", err)
	}
	return checkOneRow(result, "record successful login")
}

// ClearLock resets the lockout state without touching last_login_at. Used by
// the `folio admin unlock` command.
func (s *Store) ClearLock(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	q := s.db.Rebind(`UPDATE admins
		SET failed_login_attempts = 0, locked_until = NULL, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, now, id)
	if err != nil {
		return fmt.Errorf("clear lock: %w", err)
	}
	return checkOneRow(result, "clear lock")
}

// SetAdminActive toggles the active flag on an account.
func (s *Store) SetAdminActive(ctx context.Context, id int64, active bool) error {
	now := time.Now().UTC()
	q := s.db.Rebind("UPDATE admins SET is_active = ?, updated_at = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, active, now, id)
	if err != nil {
		return fmt.Errorf("set admin active: %w", err)
	}
	return checkOneRow(result, "set admin active")
}

func checkOneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
