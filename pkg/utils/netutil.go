package utils

import (
	"context"
	"errors"
	"net"
	"time"
)

// DefaultProbeAddr is the endpoint dialed by CheckConnectivity when no
// address is given. It is the host the lookup and speech requests go to.
const DefaultProbeAddr = "generativelanguage.googleapis.com:443"

const probeTimeout = 3 * time.Second

var networkErrorSubstrings = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"no route to host",
	"i/o timeout",
	"TLS handshake",
	"dial tcp",
	"broken pipe",
}

// IsNetworkError reports whether err looks like a transport-level failure
// rather than a response the backend produced. It checks typed net errors
// first and falls back to message substrings across the unwrap chain.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	for _, needle := range networkErrorSubstrings {
		if ContainsErrorSubstring(err, needle) {
			return true
		}
	}
	return false
}

// CheckConnectivity dials addr once to confirm the network path is up. An
// empty addr probes DefaultProbeAddr. The dial is bounded by a short timeout
// in addition to whatever deadline ctx carries.
func CheckConnectivity(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultProbeAddr
	}

	dialer := net.Dialer{Timeout: probeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return WrapIfNotNil(err)
	}
	return conn.Close()
}
