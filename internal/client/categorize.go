package client

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// CategorizeRequestError turns a raw transport error string into an
// actionable message
func CategorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "context canceled") ||
		strings.Contains(errLower, "context cancelled") {
		return "Request cancelled"
	}

	if strings.Contains(errLower, "context deadline exceeded") ||
		strings.Contains(errLower, "deadline exceeded") ||
		strings.Contains(errLower, "client.timeout exceeded") {
		return "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify service_url hostname and network"
	}

	if strings.Contains(errLower, "connection refused") {
		return "Connection refused - check that the generation service is running (or start one with `snapgen mock`)"
	}

	if strings.Contains(errLower, "connection reset") {
		return "Connection reset by server - the service may have crashed"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check network connection and firewall settings"
	}

	if strings.Contains(errLower, "x509") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "tls") {
		return "TLS error - the service certificate was rejected: " + errStr
	}

	if strings.Contains(errLower, "unsupported protocol") ||
		strings.Contains(errLower, "invalid url") {
		return "Invalid URL - service_url must start with http:// or https://"
	}

	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - the service terminated the connection"
	}

	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return "Connection timeout - the service took too long to respond"
	}

	return "Request failed: " + errStr
}

// Categorize maps an error returned by the client to the message shown to
// the user. Malformed payloads and API errors are left to the caller.
func Categorize(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrMalformedResponse) {
		return "Unexpected response from service"
	}

	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	switch e := rootErr.(type) {
	case *url.Error:
		return categorizeURLError(e)
	case *net.OpError:
		return categorizeNetError(e)
	case x509.UnknownAuthorityError:
		return "TLS error - service certificate signed by unknown authority"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	return CategorizeRequestError(err.Error())
}

func categorizeURLError(e *url.Error) string {
	if e.Timeout() {
		return "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"
	}
	return Categorize(e.Err)
}

func categorizeNetError(e *net.OpError) string {
	if e.Timeout() {
		return "Connection timeout - the service took too long to respond"
	}

	if errno, ok := e.Err.(syscall.Errno); ok {
		switch errno {
		case syscall.ECONNREFUSED:
			return "Connection refused - check that the generation service is running (or start one with `snapgen mock`)"
		case syscall.ECONNRESET:
			return "Connection reset by server - the service may have crashed"
		case syscall.ENETUNREACH:
			return "Network unreachable - check network connection and firewall settings"
		case syscall.EHOSTUNREACH:
			return "Host unreachable - check that the service host is online"
		}
	}

	if e.Err == nil {
		return CategorizeRequestError(e.Error())
	}
	return Categorize(e.Err)
}
