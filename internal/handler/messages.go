package handler

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// CreateMessage accepts a contact-form submission. This is the only public
// write in the API and is rate limited at the router.
// POST /api/v1/messages
func (h *ContentHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if err := readJSON(r, &msg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg.Name == "" || msg.Email == "" || msg.Body == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and body are required")
		return
	}
	msg.IsRead = false

	if err := h.store.CreateMessage(r.Context(), &msg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}
	writeData(w, http.StatusCreated, msg, nil)
}

// ListMessages returns contact messages, newest first. ?unread=true filters
// to unread messages only.
// GET /api/v1/admin/messages
func (h *ContentHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.ListMessages(r.Context(), queryBool(r, "unread"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	count := len(msgs)
	writeData(w, http.StatusOK, msgs, &count)
}

// MarkMessageRead flags a message as read.
// PUT /api/v1/admin/messages/{id}/read
func (h *ContentHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid message id")
		return
	}
	if err := h.store.MarkMessageRead(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteMessage removes a contact message.
// DELETE /api/v1/admin/messages/{id}
func (h *ContentHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid message id")
		return
	}
	if err := h.store.DeleteMessage(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
