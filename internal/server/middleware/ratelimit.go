package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit returns an HTTP middleware that limits requests per client IP to
// the given number per minute, using a sliding window. Applied to the whole
// admin group and, separately, to the public contact form.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(throttled),
	)
}

// LoginRateLimit returns the stricter per-IP limiter mounted on the login
// route alone. Login is the one endpoint that can mint tokens, so its window
// is much tighter than the general admin throttle.
func LoginRateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(throttled),
	)
}

// throttled replaces httprate's plain-text 429 with the API's standard
// failure envelope.
func throttled(w http.ResponseWriter, r *http.Request) {
	writeAuthError(w, http.StatusTooManyRequests, "Too many requests, slow down", "rate_limited")
}
