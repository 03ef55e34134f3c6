package handler

import (
	"errors"
	"net/http"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

// ListCertificates returns all certificates.
// GET /api/v1/certificates
func (h *ContentHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	certs, err := h.store.ListCertificates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list certificates")
		return
	}
	count := len(certs)
	writeData(w, http.StatusOK, certs, &count)
}

// CreateCertificate inserts a new certificate.
// POST /api/v1/admin/certificates
func (h *ContentHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var cert model.Certificate
	if err := readJSON(r, &cert); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if cert.Title == "" || cert.Issuer == "" {
		writeError(w, http.StatusBadRequest, "Title and issuer are required")
		return
	}

	if err := h.store.CreateCertificate(r.Context(), &cert); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create certificate")
		return
	}
	writeData(w, http.StatusCreated, cert, nil)
}

// UpdateCertificate replaces a certificate's fields.
// PUT /api/v1/admin/certificates/{id}
func (h *ContentHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid certificate id")
		return
	}

	var cert model.Certificate
	if err := readJSON(r, &cert); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if cert.Title == "" || cert.Issuer == "" {
		writeError(w, http.StatusBadRequest, "Title and issuer are required")
		return
	}
	cert.ID = id

	if err := h.store.UpdateCertificate(r.Context(), &cert); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update certificate")
		return
	}
	writeData(w, http.StatusOK, cert, nil)
}

// DeleteCertificate removes a certificate.
// DELETE /api/v1/admin/certificates/{id}
func (h *ContentHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid certificate id")
		return
	}
	if err := h.store.DeleteCertificate(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete certificate")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
