// Package tenant maps an incoming request's host and path to either the
// platform route tree or a single store's storefront tree.
package tenant

import (
	"net"
	"strings"
)

// Reserved path segments always belong to the platform tree. A store whose
// slug equals one of these is reachable only through its subdomain; this is a
// known limitation, not something the resolver tries to disambiguate.
var reserved = map[string]struct{}{
	"features":     {},
	"pricing":      {},
	"templates":    {},
	"case-studies": {},
	"about":        {},
	"contact":      {},
	"login":        {},
	"register":     {},
	"dashboard":    {},
}

// IsReserved reports whether a path segment belongs to the platform tree.
func IsReserved(segment string) bool {
	_, ok := reserved[strings.ToLower(segment)]
	return ok
}

// ReservedSegments returns the reserved set as a sorted-free slice, for
// router registration. The resolver and the router share this single list.
func ReservedSegments() []string {
	out := make([]string, 0, len(reserved))
	for seg := range reserved {
		out = append(out, seg)
	}
	return out
}

// Resolution is the outcome of tenant resolution for one request.
type Resolution struct {
	Storefront bool
	// StoreSlug is set only when Storefront is true.
	StoreSlug string
	// Subdomain is true when the slug came from the hostname rather than
	// the path.
	Subdomain bool
}

// Resolve inspects host and path and picks a route tree.
//
// A hostname that is neither the platform domain nor a local address is
// treated as subdomain addressing: the left-most label is the store slug.
// On the platform host the first path segment decides, with reserved
// segments always resolving to the platform tree.
func Resolve(host, path, platformDomain string) Resolution {
	hostname := stripPort(host)

	if !isPlatformHost(hostname, platformDomain) {
		if slug := leftmostLabel(hostname); slug != "" {
			return Resolution{Storefront: true, StoreSlug: slug, Subdomain: true}
		}
	}

	segment := firstSegment(path)
	if segment == "" || IsReserved(segment) {
		return Resolution{}
	}
	return Resolution{Storefront: true, StoreSlug: strings.ToLower(segment)}
}

func isPlatformHost(hostname, platformDomain string) bool {
	switch hostname {
	case "", "localhost", "127.0.0.1":
		return true
	}
	if platformDomain == "" {
		return true
	}
	return strings.EqualFold(hostname, platformDomain) ||
		strings.EqualFold(hostname, "www."+platformDomain)
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func leftmostLabel(hostname string) string {
	label, rest, found := strings.Cut(hostname, ".")
	if !found || rest == "" {
		return ""
	}
	return strings.ToLower(label)
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	return segment
}
