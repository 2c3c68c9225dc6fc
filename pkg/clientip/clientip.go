package clientip

import (
	"net/http"
	"net/netip"
	"strings"
)

// Unknown is returned when no usable address can be determined.
const Unknown = "unknown"

// GetIP extracts the real client IP from an HTTP request, preferring IPv4
// for cleaner display. Priority order reflects a CloudFlare-fronted
// deployment:
//
//  1. CF-Connecting-IPv6 — checked first because with CloudFlare's
//     Pseudo-IPv4 feature CF-Connecting-IP may carry a fake Class E
//     address while this header has the real IPv6.
//  2. CF-Connecting-IP — the usual CloudFlare real-IP header.
//  3. X-Forwarded-For — standard proxy chain, first IPv4 preferred.
//  4. X-Real-IP — Nginx reverse proxy.
//  5. RemoteAddr — direct connection.
func GetIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IPv6"); ip != "" {
		if simplified := simplify(ip); simplified != "" {
			return simplified
		}
	}

	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if best := bestIP(ip); best != "" {
			return best
		}
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if best := bestIP(forwarded); best != "" {
			return best
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if best := bestIP(ip); best != "" {
			return best
		}
	}

	host := r.RemoteAddr
	if h, _, ok := strings.Cut(host, "]"); ok {
		// Bracketed IPv6 host:port form.
		host = strings.TrimPrefix(h, "[")
	} else if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if simplified := simplify(host); simplified != "" {
		return simplified
	}
	return Unknown
}

// IsPseudoIPv4 reports whether ip falls in the Class E range (240.0.0.0/4)
// CloudFlare uses for Pseudo-IPv4, meaning the value is synthetic and the
// client's real address is IPv6.
func IsPseudoIPv4(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return false
	}
	return addr.As4()[0] >= 240
}

// bestIP picks the best address from a comma-separated list: the first
// valid IPv4 wins; failing that, the first valid IPv6 in simplified form.
func bestIP(list string) string {
	var firstV6 string
	for raw := range strings.SplitSeq(list, ",") {
		candidate := strings.TrimSpace(raw)
		if candidate == "" {
			continue
		}
		addr, err := netip.ParseAddr(candidate)
		if err != nil {
			continue
		}
		if addr.Is4() || addr.Is4In6() {
			return addr.Unmap().String()
		}
		if firstV6 == "" {
			firstV6 = addr.String()
		}
	}
	return firstV6
}

// simplify normalizes one address: IPv4-mapped IPv6 collapses to plain
// IPv4, IPv6 compresses to its short form. Invalid input yields "".
func simplify(ip string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}
