package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Allowlist is a parsed set of literal IPs and CIDR ranges that may reach the
// admin surface. An empty allowlist allows every address: absence of
// configuration must never lock out the only admin. Parsed once at startup
// and read-only afterwards.
type Allowlist struct {
	nets []*net.IPNet
	ips  []net.IP
}

// ParseAllowlist parses a list of entries, each a literal IP or a CIDR range.
// A malformed entry is a configuration error reported immediately so the
// process fails at startup instead of silently blocking (or admitting)
// traffic mid-request.
func ParseAllowlist(entries []string) (*Allowlist, error) {
	al := &Allowlist{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, network, err := net.ParseCIDR(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid allowlist CIDR %q: %w", entry, err)
			}
			al.nets = append(al.nets, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("invalid allowlist address %q", entry)
		}
		al.ips = append(al.ips, ip)
	}
	return al, nil
}

// Empty reports whether no entries are configured.
func (al *Allowlist) Empty() bool {
	return al == nil || (len(al.nets) == 0 && len(al.ips) == 0)
}

// Contains reports whether addr is allowed. Every address passes an empty
// allowlist; a nil addr against a non-empty allowlist fails closed.
func (al *Allowlist) Contains(addr net.IP) bool {
	if al.Empty() {
		return true
	}
	if addr == nil {
		return false
	}
	for _, ip := range al.ips {
		if ip.Equal(addr) {
			return true
		}
	}
	for _, network := range al.nets {
		if network.Contains(addr) {
			return true
		}
	}
	return false
}

// AllowOnly returns an HTTP middleware that rejects requests whose source
// address is outside the allowlist with a generic 403 before any other admin
// middleware runs. The rejection deliberately carries no hint that an
// allowlist exists.
func AllowOnly(al *Allowlist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !al.Contains(SourceIP(r)) {
				writeAuthError(w, http.StatusForbidden, "Forbidden", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SourceIP resolves the caller's address: the first entry of X-Forwarded-For
// when present (the deployment sits behind a reverse proxy), otherwise the
// transport-level peer address. Returns nil when neither parses.
func SourceIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := fwd
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			first = fwd[:idx]
		}
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare IP (e.g. from httptest or a
		// RealIP-style middleware upstream).
		return net.ParseIP(strings.TrimSpace(r.RemoteAddr))
	}
	return net.ParseIP(host)
}
