package model

import "time"

// Education is a single education history entry. EndYear of zero means the
// program is ongoing.
type Education struct {
	ID          int64     `json:"id" db:"id"`
	Institution string    `json:"institution" db:"institution"`
	Degree      string    `json:"degree" db:"degree"`
	Field       string    `json:"field" db:"field"`
	StartYear   int       `json:"start_year" db:"start_year"`
	EndYear     int       `json:"end_year" db:"end_year"`
	Description string    `json:"description" db:"description"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
