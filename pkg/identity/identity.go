// Package identity derives the rate-limit subject for a request.
package identity

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is the sentinel identity used when no email or network address
// can be determined.
const Unknown = "unknown"

// ForwardedForHeader is the proxy header carrying the original client
// address chain.
const ForwardedForHeader = "X-Forwarded-For"

// Resolve derives an identity from an optional email, the forwarded-address
// header value and the raw socket address. It is pure and total: it never
// fails and always returns a non-empty string.
//
// A present, non-empty email (trimmed, lowercased) wins. Otherwise the
// first comma-separated token of the forwarded header is used, then the
// socket address, then Unknown.
func Resolve(email, forwardedFor, socketAddr string) string {
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return e
	}

	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if addr := strings.TrimSpace(socketAddr); addr != "" {
		return addr
	}

	return Unknown
}

// FromRequest resolves an identity from an HTTP request, pairing an email
// taken from the request body with the request's network origin. The port
// is stripped from RemoteAddr so one client maps to one identity across
// connections.
func FromRequest(r *http.Request, email string) string {
	return Resolve(email, r.Header.Get(ForwardedForHeader), stripPort(r.RemoteAddr))
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
