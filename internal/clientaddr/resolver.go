// Package clientaddr resolves the best-known originating client address
// for an inbound HTTP request.
//
// The resolution order is fixed: the first hop of the X-Forwarded-For
// header, then the transport-layer peer address, then the "unknown"
// sentinel. Values taken from X-Forwarded-For are trusted verbatim; the
// header is attacker-controllable when the service is not behind a
// trusted proxy, so treat the result as informational only.
package clientaddr

import (
	"net"
	"net/http"
	"strings"
)

// ForwardedForHeader is the header intermediaries append client
// addresses to, ordered earliest-hop first.
const ForwardedForHeader = "X-Forwarded-For"

// Unknown is returned when neither a forwarding header nor a transport
// peer address is available.
const Unknown = "unknown"

// Resolve returns the best-known client address given the raw
// X-Forwarded-For header value and the transport peer address.
//
// It is a pure function: every input combination, including both
// arguments empty, produces a defined string and never an error.
func Resolve(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		// Trusted verbatim, even when the first hop trims to empty.
		return strings.TrimSpace(first)
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return Unknown
}

// FromRequest resolves the client address for an HTTP request.
//
// The transport peer is taken from r.RemoteAddr with the port stripped.
// RemoteAddr values that are not host:port pairs (as with some test
// servers and Unix socket listeners) are used as-is.
func FromRequest(r *http.Request) string {
	return Resolve(r.Header.Get(ForwardedForHeader), peerHost(r.RemoteAddr))
}

// peerHost strips the port from a host:port peer address, keeping the
// raw value when it does not parse.
func peerHost(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
