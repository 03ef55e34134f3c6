package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foliohq/folio/internal/model"
)

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

// ListProjects returns all projects ordered for display. When featuredOnly is
// set, only featured projects are returned.
func (s *Store) ListProjects(ctx context.Context, featuredOnly bool) ([]model.Project, error) {
	var projects []model.Project
	q := "SELECT * FROM projects ORDER BY sort_order, id"
	if featuredOnly {
		q = s.db.Rebind("SELECT * FROM projects WHERE featured = ? ORDER BY sort_order, id")
		if err := s.db.SelectContext(ctx, &projects, q, true); err != nil {
			return nil, fmt.Errorf("list featured projects: %w", err)
		}
		return projects, nil
	}
	if err := s.db.SelectContext(ctx, &projects, q); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProjectBySlug returns a single project by its URL slug.
func (s *Store) GetProjectBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	q := s.db.Rebind("SELECT * FROM projects WHERE slug = ?")
	if err := s.db.GetContext(ctx, &p, q, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// CreateProject inserts a project. ID and timestamps are populated on return.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	const q = `INSERT INTO projects
		(title, slug, summary, description, technologies, image_url, live_url, repo_url, featured, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := s.insertID(ctx, q,
		p.Title, p.Slug, p.Summary, p.Description, p.Technologies,
		p.ImageURL, p.LiveURL, p.RepoURL, p.Featured, p.SortOrder,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID = id
	return nil
}

// UpdateProject replaces all mutable fields of a project.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	p.UpdatedAt = time.Now().UTC()
	q := s.db.Rebind(`UPDATE projects SET
		title = ?, slug = ?, summary = ?, description = ?, technologies = ?,
		image_url = ?, live_url = ?, repo_url = ?, featured = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q,
		p.Title, p.Slug, p.Summary, p.Description, p.Technologies,
		p.ImageURL, p.LiveURL, p.RepoURL, p.Featured, p.SortOrder, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return checkOneRow(result, "update project")
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return checkOneRow(result, "delete project")
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

// ListSkills returns all skills ordered by category then display order.
func (s *Store) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	if err := s.db.SelectContext(ctx, &skills, "SELECT * FROM skills ORDER BY category, sort_order, id"); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// CreateSkill inserts a skill.
func (s *Store) CreateSkill(ctx context.Context, sk *model.Skill) error {
	now := time.Now().UTC()
	sk.CreatedAt = now
	sk.UpdatedAt = now

	const q = `INSERT INTO skills (name, category, level, icon_url, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q, sk.Name, sk.Category, sk.Level, sk.IconURL, sk.SortOrder, sk.CreatedAt, sk.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert skill: %w", err)
	}
	sk.ID = id
	return nil
}

// UpdateSkill replaces all mutable fields of a skill.
func (s *Store) UpdateSkill(ctx context.Context, sk *model.Skill) error {
	sk.UpdatedAt = time.Now().UTC()
	q := s.db.Rebind(`UPDATE skills SET name = ?, category = ?, level = ?, icon_url = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, sk.Name, sk.Category, sk.Level, sk.IconURL, sk.SortOrder, sk.UpdatedAt, sk.ID)
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	return checkOneRow(result, "update skill")
}

// DeleteSkill removes a skill by id.
func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM skills WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return checkOneRow(result, "delete skill")
}

// ---------------------------------------------------------------------------
// Certificates
// ---------------------------------------------------------------------------

// ListCertificates returns all certificates in display order.
func (s *Store) ListCertificates(ctx context.Context) ([]model.Certificate, error) {
	var certs []model.Certificate
	if err := s.db.SelectContext(ctx, &certs, "SELECT * FROM certificates ORDER BY sort_order, id"); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

// CreateCertificate inserts a certificate.
func (s *Store) CreateCertificate(ctx context.Context, c *model.Certificate) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	const q = `INSERT INTO certificates
		(title, issuer, issue_date, credential_id, credential_url, image_url, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q,
		c.Title, c.Issuer, c.IssueDate, c.CredentialID, c.CredentialURL, c.ImageURL, c.SortOrder,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	c.ID = id
	return nil
}

// UpdateCertificate replaces all mutable fields of a certificate.
func (s *Store) UpdateCertificate(ctx context.Context, c *model.Certificate) error {
	c.UpdatedAt = time.Now().UTC()
	q := s.db.Rebind(`UPDATE certificates SET
		title = ?, issuer = ?, issue_date = ?, credential_id = ?, credential_url = ?, image_url = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q,
		c.Title, c.Issuer, c.IssueDate, c.CredentialID, c.CredentialURL, c.ImageURL, c.SortOrder, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	return checkOneRow(result, "update certificate")
}

// DeleteCertificate removes a certificate by id.
func (s *Store) DeleteCertificate(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM certificates WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	return checkOneRow(result, "delete certificate")
}

// ---------------------------------------------------------------------------
// Education
// ---------------------------------------------------------------------------

// ListEducation returns all education entries in display order.
func (s *Store) ListEducation(ctx context.Context) ([]model.Education, error) {
	var entries []model.Education
	if err := s.db.SelectContext(ctx, &entries, "SELECT * FROM education ORDER BY sort_order, start_year DESC, id"); err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	return entries, nil
}

// CreateEducation inserts an education entry.
func (s *Store) CreateEducation(ctx context.Context, e *model.Education) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	const q = `INSERT INTO education
		(institution, degree, field, start_year, end_year, description, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q,
		e.Institution, e.Degree, e.Field, e.StartYear, e.EndYear, e.Description, e.SortOrder,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert education: %w", err)
	}
	e.ID = id
	return nil
}

// UpdateEducation replaces all mutable fields of an education entry.
func (s *Store) UpdateEducation(ctx context.Context, e *model.Education) error {
	e.UpdatedAt = time.Now().UTC()
	q := s.db.Rebind(`UPDATE education SET
		institution = ?, degree = ?, field = ?, start_year = ?, end_year = ?, description = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q,
		e.Institution, e.Degree, e.Field, e.StartYear, e.EndYear, e.Description, e.SortOrder, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update education: %w", err)
	}
	return checkOneRow(result, "update education")
}

// DeleteEducation removes an education entry by id.
func (s *Store) DeleteEducation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM education WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	return checkOneRow(result, "delete education")
}

// ---------------------------------------------------------------------------
// Contact messages
// ---------------------------------------------------------------------------

// CreateMessage inserts a contact form submission.
func (s *Store) CreateMessage(ctx context.Context, m *model.ContactMessage) error {
	m.CreatedAt = time.Now().UTC()

	const q = `INSERT INTO contact_messages (name, email, subject, body, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	id, err := s.insertID(ctx, q, m.Name, m.Email, m.Subject, m.Body, false, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	m.ID = id
	return nil
}

// ListMessages returns contact messages, newest first. When unreadOnly is
// set, read messages are filtered out.
func (s *Store) ListMessages(ctx context.Context, unreadOnly bool) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	q := "SELECT * FROM contact_messages ORDER BY created_at DESC, id DESC"
	if unreadOnly {
		q = s.db.Rebind("SELECT * FROM contact_messages WHERE is_read = ? ORDER BY created_at DESC, id DESC")
		if err := s.db.SelectContext(ctx, &messages, q, false); err != nil {
			return nil, fmt.Errorf("list unread messages: %w", err)
		}
		return messages, nil
	}
	if err := s.db.SelectContext(ctx, &messages, q); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// MarkMessageRead flags a message as read.
func (s *Store) MarkMessageRead(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("UPDATE contact_messages SET is_read = ? WHERE id = ?"), true, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return checkOneRow(result, "mark message read")
}

// DeleteMessage removes a message by id.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM contact_messages WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return checkOneRow(result, "delete message")
}

// ---------------------------------------------------------------------------
// Auth events
// ---------------------------------------------------------------------------

// InsertAuthEvent appends a row to the auth event trail.
func (s *Store) InsertAuthEvent(ctx context.Context, e *model.AuthEvent) error {
	e.CreatedAt = time.Now().UTC()

	const q = `INSERT INTO auth_events (event, email, source_ip, created_at) VALUES (?, ?, ?, ?)`
	id, err := s.insertID(ctx, q, e.Event, e.Email, e.SourceIP, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	e.ID = id
	return nil
}

// ListAuthEvents returns the most recent auth events, newest first.
func (s *Store) ListAuthEvents(ctx context.Context, limit int) ([]model.AuthEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []model.AuthEvent
	q := s.db.Rebind("SELECT * FROM auth_events ORDER BY created_at DESC, id DESC LIMIT ?")
	if err := s.db.SelectContext(ctx, &events, q, limit); err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}
