package model

import "time"

// Skill is a single skill entry, grouped by category on the public site.
// Level is a self-assessed proficiency from 0 to 100.
type Skill struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Level     int       `json:"level" db:"level"`
	IconURL   string    `json:"icon_url" db:"icon_url"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
