package http

import (
	"net"
	"net/http"
	"strings"
)

// ProxyHeadersMiddleware replaces RemoteAddr with the client address reported by
// X-Real-IP or X-Forwarded-For. It must only be enabled behind a proxy that
// overwrites those headers; otherwise it is a pass-through.
func ProxyHeadersMiddleware(trusted bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !trusted {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := forwardedIP(r); ip != "" {
				r.RemoteAddr = net.JoinHostPort(ip, "0")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forwardedIP(r *http.Request) string {
	candidate := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if candidate == "" {
		candidate = r.Header.Get("X-Forwarded-For")
		if idx := strings.Index(candidate, ","); idx != -1 {
			candidate = candidate[:idx]
		}
		candidate = strings.TrimSpace(candidate)
	}
	if net.ParseIP(candidate) == nil {
		return ""
	}
	return candidate
}
