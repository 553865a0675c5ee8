package constants

import "time"

// HTTP transport defaults for the upstream client.
const (
	DefaultDialTimeout           = 10 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultResponseHeaderTimeout = 60 * time.Second
	DefaultExpectContinueTimeout = 2 * time.Second

	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second

	MaxIdleConns        = 64
	MaxIdleConnsPerHost = 16
)

// Upstream response handling limits.
const (
	// MaxResponseBodyBytes caps how much of an upstream body is read into
	// memory. Generation responses are text and stay well under this.
	MaxResponseBodyBytes = 8 << 20

	// DiagnosticExcerptBytes caps how much raw upstream body is embedded in
	// a diagnostic trace.
	DiagnosticExcerptBytes = 1000
)
