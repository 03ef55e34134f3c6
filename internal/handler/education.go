package handler

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// ListEducation returns all education entries, most recent first.
// GET /api/v1/education
func (h *ContentHandler) ListEducation(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEducation(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list education")
		return
	}
	count := len(entries)
	writeData(w, http.StatusOK, entries, &count)
}

// CreateEducation inserts a new education entry.
// POST /api/v1/admin/education
func (h *ContentHandler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var entry model.Education
	if err := readJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.Institution == "" || entry.Degree == "" {
		writeError(w, http.StatusBadRequest, "Institution and degree are required")
		return
	}

	if err := h.store.CreateEducation(r.Context(), &entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create education entry")
		return
	}
	writeData(w, http.StatusCreated, entry, nil)
}

// UpdateEducation replaces an education entry's fields.
// PUT /api/v1/admin/education/{id}
func (h *ContentHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid education id")
		return
	}

	var entry model.Education
	if err := readJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.Institution == "" || entry.Degree == "" {
		writeError(w, http.StatusBadRequest, "Institution and degree are required")
		return
	}
	entry.ID = id

	if err := h.store.UpdateEducation(r.Context(), &entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update education entry")
		return
	}
	writeData(w, http.StatusOK, entry, nil)
}

// DeleteEducation removes an education entry.
// DELETE /api/v1/admin/education/{id}
func (h *ContentHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid education id")
		return
	}
	if err := h.store.DeleteEducation(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete education entry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
