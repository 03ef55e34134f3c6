package handler

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// ListSkills returns all skills ordered by category and sort order.
// GET /api/v1/skills
func (h *ContentHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.store.ListSkills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list skills")
		return
	}
	count := len(skills)
	writeData(w, http.StatusOK, skills, &count)
}

// CreateSkill inserts a new skill.
// POST /api/v1/admin/skills
func (h *ContentHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var skill model.Skill
	if err := readJSON(r, &skill); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if skill.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	skill.Level = clampInt(skill.Level, 0, 100)

	if err := h.store.CreateSkill(r.Context(), &skill); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create skill")
		return
	}
	writeData(w, http.StatusCreated, skill, nil)
}

// UpdateSkill replaces a skill's fields.
// PUT /api/v1/admin/skills/{id}
func (h *ContentHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}

	var skill model.Skill
	if err := readJSON(r, &skill); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if skill.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	skill.Level = clampInt(skill.Level, 0, 100)
	skill.ID = id

	if err := h.store.UpdateSkill(r.Context(), &skill); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Skill not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update skill")
		return
	}
	writeData(w, http.StatusOK, skill, nil)
}

// DeleteSkill removes a skill.
// DELETE /api/v1/admin/skills/{id}
func (h *ContentHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}
	if err := h.store.DeleteSkill(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Skill not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete skill")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
