package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foliohq/folio/internal/model"
)

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the standard failure envelope. No internal error detail
// belongs in message; callers log the underlying error instead.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message})
}

// writeErrorCode is writeError with a machine-readable reason code.
func writeErrorCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message, Code: code})
}

// writeData wraps a result in the success envelope. count is included for
// list payloads.
func writeData(w http.ResponseWriter, status int, data interface{}, count *int) {
	writeJSON(w, status, model.DataResponse{Success: true, Data: data, Count: count})
}

// readJSON decodes the request body into v, closing the body regardless of
// outcome.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID extracts the {id} URL parameter as an int64, returning false if it
// is missing or not numeric.
func pathID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathSlug extracts the {slug} URL parameter.
func pathSlug(r *http.Request) string {
	return chi.URLParam(r, "slug")
}

// queryBool reports whether a query parameter is "true" or "1".
func queryBool(r *http.Request, key string) bool {
	val := r.URL.Query().Get(key)
	return val == "true" || val == "1"
}

// queryInt extracts an integer query parameter with a default.
func queryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// slugify derives a URL slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// clampInt constrains val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
