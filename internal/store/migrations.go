package store

import (
	"fmt"
	"strings"
)

// dialect holds the handful of DDL fragments that differ per backend. All
// other SQL in the store is shared and rebound at query time.
type dialect struct {
	serialPK string // auto-incrementing integer primary key
	datetime string // timestamp column type
	boolean  string // boolean column type
	text     string // unbounded text
}

func dialectFor(driver string) dialect {
	switch driver {
	case "postgres":
		return dialect{
			serialPK: "BIGSERIAL PRIMARY KEY",
			datetime: "TIMESTAMPTZ",
			boolean:  "BOOLEAN",
			text:     "TEXT",
		}
	case "mysql":
		return dialect{
			serialPK: "BIGINT AUTO_INCREMENT PRIMARY KEY",
			datetime: "DATETIME",
			boolean:  "BOOLEAN",
			text:     "TEXT",
		}
	default: // sqlite
		return dialect{
			serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
			datetime: "DATETIME",
			boolean:  "INTEGER",
			text:     "TEXT",
		}
	}
}

func (s *Store) migrate() error {
	d := dialectFor(s.driver)

	// MySQL TEXT columns can't take a DEFAULT; use VARCHAR for short fields.
	varchar := "VARCHAR(512)"
	if s.driver == "sqlite" {
		varchar = "TEXT"
	}

	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admins (
			id %s,
			email %s UNIQUE NOT NULL,
			password_hash %s NOT NULL,
			name %s NOT NULL DEFAULT '',
			role %s NOT NULL DEFAULT 'admin',
			is_active %s NOT NULL DEFAULT TRUE,
			failed_login_attempts INTEGER NOT NULL DEFAULT 0,
			locked_until %s,
			last_login_at %s,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, varchar, d.boolean, d.datetime, d.datetime, d.datetime, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS projects (
			id %s,
			title %s NOT NULL,
			slug %s UNIQUE NOT NULL,
			summary %s NOT NULL DEFAULT '',
			description %s,
			technologies %s,
			image_url %s NOT NULL DEFAULT '',
			live_url %s NOT NULL DEFAULT '',
			repo_url %s NOT NULL DEFAULT '',
			featured %s NOT NULL DEFAULT FALSE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, d.text, d.text, varchar, varchar, varchar, d.boolean, d.datetime, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS skills (
			id %s,
			name %s NOT NULL,
			category %s NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 0,
			icon_url %s NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, d.datetime, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS certificates (
			id %s,
			title %s NOT NULL,
			issuer %s NOT NULL DEFAULT '',
			issue_date %s,
			credential_id %s NOT NULL DEFAULT '',
			credential_url %s NOT NULL DEFAULT '',
			image_url %s NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, d.datetime, varchar, varchar, varchar, d.datetime, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS education (
			id %s,
			institution %s NOT NULL,
			degree %s NOT NULL DEFAULT '',
			field %s NOT NULL DEFAULT '',
			start_year INTEGER NOT NULL DEFAULT 0,
			end_year INTEGER NOT NULL DEFAULT 0,
			description %s,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, d.text, d.datetime, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS contact_messages (
			id %s,
			name %s NOT NULL,
			email %s NOT NULL,
			subject %s NOT NULL DEFAULT '',
			body %s NOT NULL,
			is_read %s NOT NULL DEFAULT FALSE,
			created_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, d.text, d.boolean, d.datetime),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS auth_events (
			id %s,
			event %s NOT NULL,
			email %s NOT NULL DEFAULT '',
			source_ip %s NOT NULL DEFAULT '',
			created_at %s NOT NULL
		)`, d.serialPK, varchar, varchar, varchar, d.datetime),

		`CREATE INDEX IF NOT EXISTS idx_projects_featured ON projects(featured)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_read ON contact_messages(is_read)`,
		`CREATE INDEX IF NOT EXISTS idx_auth_events_created ON auth_events(created_at)`,
	}

	for _, m := range migrations {
		if s.driver == "sqlite" {
			// SQLite stores booleans as integers; rewrite the literal defaults.
			m = strings.ReplaceAll(m, "DEFAULT TRUE", "DEFAULT 1")
			m = strings.ReplaceAll(m, "DEFAULT FALSE", "DEFAULT 0")
		}
		if s.driver == "mysql" && strings.HasPrefix(m, "CREATE INDEX IF NOT EXISTS") {
			// MySQL has no CREATE INDEX IF NOT EXISTS; duplicates are harmless
			// here since tables and indexes are created together.
			m = strings.Replace(m, "CREATE INDEX IF NOT EXISTS", "CREATE INDEX", 1)
			if _, err := s.db.Exec(m); err != nil {
				if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
					continue
				}
				return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
			}
			continue
		}
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
