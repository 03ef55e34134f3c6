package model

import "time"

// Certificate is a professional certificate or course completion entry.
type Certificate struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Issuer        string     `json:"issuer" db:"issuer"`
	IssueDate     *time.Time `json:"issue_date,omitempty" db:"issue_date"`
	CredentialID  string     `json:"credential_id" db:"credential_id"`
	CredentialURL string     `json:"credential_url" db:"credential_url"`
	ImageURL      string     `json:"image_url" db:"image_url"`
	SortOrder     int        `json:"sort_order" db:"sort_order"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
