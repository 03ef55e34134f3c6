package model

import "time"

// AuthEvent is one row of the authentication audit trail: a login outcome or
// an access-control rejection, with just enough context to be useful on the
// admin dashboard and nothing sensitive.
type AuthEvent struct {
	ID        int64     `json:"id" db:"id"`
	Event     string    `json:"event" db:"event"`
	Email     string    `json:"email,omitempty" db:"email"`
	SourceIP  string    `json:"source_ip,omitempty" db:"source_ip"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
