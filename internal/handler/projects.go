package handler

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// ContentHandler serves the portfolio resources: projects, skills,
// certificates, education, and contact messages. Reads are public; mutations
// sit behind the admin gateway.
type ContentHandler struct {
	store *store.Store
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(st *store.Store) *ContentHandler {
	return &ContentHandler{store: st}
}

// ListProjects returns all projects, or only featured ones with ?featured=true.
// GET /api/v1/projects
func (h *ContentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context(), queryBool(r, "featured"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	count := len(projects)
	writeData(w, http.StatusOK, projects, &count)
}

// GetProject returns one project by slug.
// GET /api/v1/projects/{slug}
func (h *ContentHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := pathSlug(r)
	project, err := h.store.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load project")
		return
	}
	writeData(w, http.StatusOK, project, nil)
}

// CreateProject inserts a new project. Slug defaults to a slugified title.
// POST /api/v1/admin/projects
func (h *ContentHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := readJSON(r, &project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if project.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if project.Slug == "" {
		project.Slug = slugify(project.Title)
	}

	if err := h.store.CreateProject(r.Context(), &project); err != nil {
		writeError(w, http.StatusConflict, "Project could not be created (duplicate slug?)")
		return
	}
	writeData(w, http.StatusCreated, project, nil)
}

// UpdateProject replaces a project's fields.
// PUT /api/v1/admin/projects/{id}
func (h *ContentHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var project model.Project
	if err := readJSON(r, &project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if project.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if project.Slug == "" {
		project.Slug = slugify(project.Title)
	}
	project.ID = id

	if err := h.store.UpdateProject(r.Context(), &project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	writeData(w, http.StatusOK, project, nil)
}

// DeleteProject removes a project.
// DELETE /api/v1/admin/projects/{id}
func (h *ContentHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
