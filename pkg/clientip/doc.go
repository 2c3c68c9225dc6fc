// Package clientip resolves the real client IP behind CloudFlare and
// other reverse proxies, preferring IPv4 for log readability.
//
// CF-Connecting-IPv6 is consulted before CF-Connecting-IP because
// CloudFlare's Pseudo-IPv4 feature can put a synthetic Class E address in
// the latter; IsPseudoIPv4 detects that case. X-Forwarded-For lists are
// scanned for the first IPv4 before falling back to a compressed IPv6.
//
// The Middleware stores the resolved address in the request context for
// request logging.
package clientip
