package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Project is a portfolio project entry shown on the public site.
type Project struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Slug         string     `json:"slug" db:"slug"`
	Summary      string     `json:"summary" db:"summary"`
	Description  string     `json:"description" db:"description"`
	Technologies StringList `json:"technologies" db:"technologies"`
	ImageURL     string     `json:"image_url" db:"image_url"`
	LiveURL      string     `json:"live_url" db:"live_url"`
	RepoURL      string     `json:"repo_url" db:"repo_url"`
	Featured     bool       `json:"featured" db:"featured"`
	SortOrder    int        `json:"sort_order" db:"sort_order"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// StringList is a []string stored as a JSON text column, so the same schema
// works across SQLite, Postgres, and MySQL.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}
