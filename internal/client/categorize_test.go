package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestCategorizeRequestError(t *testing.T) {
	tests := []struct {
		name     string
		errStr   string
		wantText string
	}{
		{"empty error", "", ""},
		{"deadline", `Post "http://localhost:5000/generate": context deadline exceeded`, "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"},
		{"dns", "dial tcp: lookup nonexistent.example.com: no such host", "DNS resolution failed - verify service_url hostname and network"},
		{"refused", "dial tcp 127.0.0.1:5000: connect: connection refused", "Connection refused - check that the generation service is running (or start one with `snapgen mock`)"},
		{"reset", "read tcp 127.0.0.1:5000->127.0.0.1:54321: read: connection reset by peer", "Connection reset by server - the service may have crashed"},
		{"unreachable", "dial tcp: network is unreachable", "Network unreachable - check network connection and firewall settings"},
		{"protocol", "unsupported protocol scheme", "Invalid URL - service_url must start with http:// or https://"},
		{"eof", "unexpected EOF", "Connection closed unexpectedly - the service terminated the connection"},
		{"unknown", "something odd", "Request failed: something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeRequestError(tt.errStr); got != tt.wantText {
				t.Errorf("CategorizeRequestError(%q) = %q, want %q", tt.errStr, got, tt.wantText)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"nil", nil, ""},
		{"malformed", fmt.Errorf("%w: expected a string", ErrMalformedResponse), "Unexpected response from service"},
		{"deadline", context.DeadlineExceeded, "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"},
		{"canceled", context.Canceled, "Request cancelled"},
		{
			"refused errno",
			&url.Error{Op: "Post", URL: "http://localhost:5000", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			"Connection refused - check that the generation service is running (or start one with `snapgen mock`)",
		},
		{"plain", errors.New("boom"), "Request failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.err); got != tt.wantText {
				t.Errorf("Categorize() = %q, want %q", got, tt.wantText)
			}
		})
	}
}
