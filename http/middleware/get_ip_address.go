package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/roadtrip"
)

// unknownIP stands in for a request no address can be resolved for.
const unknownIP = "0.0.0.0"

// forwardingHeaders are read in order for the address a proxy saw.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublicPrefixes are IANA special-purpose IPv4 blocks netip.Addr.IsPrivate does not cover.
var nonPublicPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress resolves the IP address of the client making the *http.Request
// and promotes it to *http.Request.Context under roadtrip.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r)
			r = r.Clone(context.WithValue(r.Context(), roadtrip.IpAddrKey, ip))
			h.ServeHTTP(w, r)
		})
	}
}

// GetIPAddress resolves the IP address of the client making r.
//
// The "X-Forwarded-For" and "X-Real-Ip" headers are searched right to left
// for the first public address, that being the one right before our proxy.
// Without one, the host of r.RemoteAddr is used.
func GetIPAddress(r *http.Request) string {
	for _, h := range forwardingHeaders {
		addresses := strings.Split(r.Header.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			if isPublic(ip) {
				return ip
			}
		}
	}

	if r.RemoteAddr == "" {
		return unknownIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr carries no port
		host = r.RemoteAddr
	}

	if _, err := netip.ParseAddr(host); err != nil {
		return unknownIP
	}

	return host
}

// isPublic asserts whether ip parses as a globally routable unicast address.
func isPublic(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	addr = addr.Unmap()
	for _, p := range nonPublicPrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
