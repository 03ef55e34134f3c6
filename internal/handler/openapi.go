package handler

import (
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIHandler serves the generated OpenAPI document. The document is
// fixed at startup, so it is marshaled once and cached.
type OpenAPIHandler struct {
	doc *openapi3.T

	once   sync.Once
	cached []byte
	err    error
}

// NewOpenAPIHandler creates an OpenAPIHandler for the given document.
func NewOpenAPIHandler(doc *openapi3.T) *OpenAPIHandler {
	return &OpenAPIHandler{doc: doc}
}

// ServeSpec serves the OpenAPI document as JSON.
// GET /openapi.json
func (h *OpenAPIHandler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.cached, h.err = h.doc.MarshalJSON()
	})
	if h.err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render API document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.cached)
}
