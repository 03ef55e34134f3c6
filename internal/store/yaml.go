package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foliohq/folio/internal/model"
)

// ContentSnapshot is the YAML representation of all portfolio content, used
// by `folio content export` and `folio content import` for backups and for
// seeding a fresh instance. Admin accounts and messages are deliberately not
// part of a snapshot.
type ContentSnapshot struct {
	ExportedAt   time.Time         `yaml:"exported_at"`
	Projects     []projectYAML     `yaml:"projects"`
	Skills       []skillYAML       `yaml:"skills"`
	Certificates []certificateYAML `yaml:"certificates"`
	Education    []educationYAML   `yaml:"education"`
}

type projectYAML struct {
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Summary      string   `yaml:"summary,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Technologies []string `yaml:"technologies,omitempty"`
	ImageURL     string   `yaml:"image_url,omitempty"`
	LiveURL      string   `yaml:"live_url,omitempty"`
	RepoURL      string   `yaml:"repo_url,omitempty"`
	Featured     bool     `yaml:"featured,omitempty"`
	SortOrder    int      `yaml:"sort_order,omitempty"`
}

type skillYAML struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category,omitempty"`
	Level     int    `yaml:"level,omitempty"`
	IconURL   string `yaml:"icon_url,omitempty"`
	SortOrder int    `yaml:"sort_order,omitempty"`
}

type certificateYAML struct {
	Title         string     `yaml:"title"`
	Issuer        string     `yaml:"issuer,omitempty"`
	IssueDate     *time.Time `yaml:"issue_date,omitempty"`
	CredentialID  string     `yaml:"credential_id,omitempty"`
	CredentialURL string     `yaml:"credential_url,omitempty"`
	ImageURL      string     `yaml:"image_url,omitempty"`
	SortOrder     int        `yaml:"sort_order,omitempty"`
}

type educationYAML struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree,omitempty"`
	Field       string `yaml:"field,omitempty"`
	StartYear   int    `yaml:"start_year,omitempty"`
	EndYear     int    `yaml:"end_year,omitempty"`
	Description string `yaml:"description,omitempty"`
	SortOrder   int    `yaml:"sort_order,omitempty"`
}

// ExportContent reads all portfolio content into a snapshot.
func (s *Store) ExportContent(ctx context.Context) (*ContentSnapshot, error) {
	snap := &ContentSnapshot{ExportedAt: time.Now().UTC()}

	projects, err := s.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		snap.Projects = append(snap.Projects, projectYAML{
			Title: p.Title, Slug: p.Slug, Summary: p.Summary, Description: p.Description,
			Technologies: p.Technologies, ImageURL: p.ImageURL, LiveURL: p.LiveURL,
			RepoURL: p.RepoURL, Featured: p.Featured, SortOrder: p.SortOrder,
		})
	}

	skills, err := s.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	for _, sk := range skills {
		snap.Skills = append(snap.Skills, skillYAML{
			Name: sk.Name, Category: sk.Category, Level: sk.Level,
			IconURL: sk.IconURL, SortOrder: sk.SortOrder,
		})
	}

	certs, err := s.ListCertificates(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range certs {
		snap.Certificates = append(snap.Certificates, certificateYAML{
			Title: c.Title, Issuer: c.Issuer, IssueDate: c.IssueDate,
			CredentialID: c.CredentialID, CredentialURL: c.CredentialURL,
			ImageURL: c.ImageURL, SortOrder: c.SortOrder,
		})
	}

	education, err := s.ListEducation(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range education {
		snap.Education = append(snap.Education, educationYAML{
			Institution: e.Institution, Degree: e.Degree, Field: e.Field,
			StartYear: e.StartYear, EndYear: e.EndYear,
			Description: e.Description, SortOrder: e.SortOrder,
		})
	}

	return snap, nil
}

// ImportContent inserts every entry of a snapshot. It is insert-only: entries
// that collide with existing rows (e.g. a duplicate project slug) fail the
// import rather than silently overwriting.
func (s *Store) ImportContent(ctx context.Context, snap *ContentSnapshot) error {
	for _, p := range snap.Projects {
		project := model.Project{
			Title: p.Title, Slug: p.Slug, Summary: p.Summary, Description: p.Description,
			Technologies: p.Technologies, ImageURL: p.ImageURL, LiveURL: p.LiveURL,
			RepoURL: p.RepoURL, Featured: p.Featured, SortOrder: p.SortOrder,
		}
		if err := s.CreateProject(ctx, &project); err != nil {
			return fmt.Errorf("import project %q: %w", p.Slug, err)
		}
	}
	for _, sk := range snap.Skills {
		skill := model.Skill{
			Name: sk.Name, Category: sk.Category, Level: sk.Level,
			IconURL: sk.IconURL, SortOrder: sk.SortOrder,
		}
		if err := s.CreateSkill(ctx, &skill); err != nil {
			return fmt.Errorf("import skill %q: %w", sk.Name, err)
		}
	}
	for _, c := range snap.Certificates {
		cert := model.Certificate{
			Title: c.Title, Issuer: c.Issuer, IssueDate: c.IssueDate,
			CredentialID: c.CredentialID, CredentialURL: c.CredentialURL,
			ImageURL: c.ImageURL, SortOrder: c.SortOrder,
		}
		if err := s.CreateCertificate(ctx, &cert); err != nil {
			return fmt.Errorf("import certificate %q: %w", c.Title, err)
		}
	}
	for _, e := range snap.Education {
		entry := model.Education{
			Institution: e.Institution, Degree: e.Degree, Field: e.Field,
			StartYear: e.StartYear, EndYear: e.EndYear,
			Description: e.Description, SortOrder: e.SortOrder,
		}
		if err := s.CreateEducation(ctx, &entry); err != nil {
			return fmt.Errorf("import education %q: %w", e.Institution, err)
		}
	}
	return nil
}

// WriteSnapshot marshals a snapshot to a YAML file.
func WriteSnapshot(path string, snap *ContentSnapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshot reads and parses a YAML snapshot file.
func ReadSnapshot(path string) (*ContentSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap ContentSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}
