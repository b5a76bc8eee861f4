// Package requestutil holds small helpers shared by the HTTP middleware.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// newRequestID is swapped in tests.
var newRequestID = uuid.NewString

// SanitizeRequestID keeps a well-formed incoming id and mints a new one otherwise.
func SanitizeRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random v4 UUID.
func NewRequestID() string {
	return newRequestID()
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address
// without its port.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
