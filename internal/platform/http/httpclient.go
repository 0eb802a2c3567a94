// Package http builds HTTP clients for outbound calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is the whole-request timeout used when none is given.
// Image-mode responses are rendered server-side, so it is generous.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates an HTTP client for calls to a remote analysis server.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - Dialer.KeepAlive: lifetime of reusable TCP connections
//   - MaxIdleConns / IdleConnTimeout: idle pool sizing
//   - TLSHandshakeTimeout: upper bound on the HTTPS handshake
//   - Client.Timeout: whole-request timeout; DefaultTimeout when timeout <= 0
//
// http.DefaultClient has no timeout, so callers should always use this instead.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
