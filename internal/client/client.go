package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/snapgen/internal/config"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/types"
)

// Endpoint paths on the generation service
const (
	PathGenerate        = "/generate"
	PathPassphrase      = "/generate-passphrase"
	PathHealth          = "/health"
	PathQuickString     = "/api/string"
	PathQuickPassphrase = "/api/passphrase"

	// HeaderRequestID carries a per-request UUID for log correlation
	HeaderRequestID = "X-Request-Id"

	// StatusHealthy is the only status string treated as healthy
	StatusHealthy = "healthy"
	// StatusUnhealthyFallback stands in for a missing status on a failing response
	StatusUnhealthyFallback = "unhealthy"
)

var (
	// ErrMissingBaseURL is returned when no service URL is configured
	ErrMissingBaseURL = errors.New("service url is required")
	// ErrInvalidBaseURL is returned for URLs without an http(s) scheme or host
	ErrInvalidBaseURL = errors.New("service url must be an absolute http(s) url")
	// ErrMalformedResponse is returned when a success payload lacks the expected field
	ErrMalformedResponse = errors.New("malformed response from service")
)

// APIError is a non-2xx response from the service. Message is the payload's
// error field and may be empty, in which case callers supply a fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service returned %d", e.StatusCode)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Fields     config.Fields
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the generation service
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	strings    *jmespath.JMESPath
	passphrase *jmespath.JMESPath
	single     *jmespath.JMESPath
	errField   *jmespath.JMESPath
	status     *jmespath.JMESPath
	available  *jmespath.JMESPath
	total      *jmespath.JMESPath
	used       *jmespath.JMESPath
}

// New validates opts and compiles the response field expressions
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	fields := opts.Fields
	if fields == (config.Fields{}) {
		fields = config.DefaultFields()
	}

	c := &Client{
		baseURL: base,
		http:    httpClient,
		logger:  logging.OrDiscard(opts.Logger),
	}

	for _, f := range []struct {
		dst  **jmespath.JMESPath
		expr string
		name string
	}{
		{&c.strings, fields.Strings, "strings"},
		{&c.passphrase, fields.Passphrase, "passphrase"},
		{&c.single, fields.String, "string"},
		{&c.errField, fields.Error, "error"},
		{&c.status, fields.Status, "status"},
		{&c.available, fields.Available, "available"},
		{&c.total, fields.Total, "total"},
		{&c.used, fields.Used, "used"},
	} {
		jp, err := jmespath.Compile(f.expr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s field expression %q: %w", f.name, f.expr, err)
		}
		*f.dst = jp
	}

	return c, nil
}

// BaseURL returns the normalized service URL
func (c *Client) BaseURL() string { return c.baseURL }

// Generate requests req.Count random strings
func (c *Client) Generate(ctx context.Context, req types.CharacterSetRequest) ([]string, error) {
	if req.CharTypes == nil {
		req.CharTypes = []types.CharType{}
	}
	payload, err := c.call(ctx, http.MethodPost, PathGenerate, req)
	if err != nil {
		return nil, err
	}
	return searchStrings(c.strings, payload)
}

// GeneratePassphrase requests one passphrase
func (c *Client) GeneratePassphrase(ctx context.Context, req types.PassphraseRequest) (string, error) {
	payload, err := c.call(ctx, http.MethodPost, PathPassphrase, req)
	if err != nil {
		return "", err
	}
	return searchString(c.passphrase, payload)
}

// QuickString fetches the service's fixed-format random string
func (c *Client) QuickString(ctx context.Context) (string, error) {
	payload, err := c.call(ctx, http.MethodGet, PathQuickString, nil)
	if err != nil {
		return "", err
	}
	return searchString(c.single, payload)
}

// QuickPassphrase fetches the service's fixed-format passphrase
func (c *Client) QuickPassphrase(ctx context.Context) (string, error) {
	payload, err := c.call(ctx, http.MethodGet, PathQuickPassphrase, nil)
	if err != nil {
		return "", err
	}
	return searchString(c.passphrase, payload)
}

// Health polls the health endpoint. Any decodable payload is an answer,
// whatever its HTTP status: "healthy" maps to HealthHealthy and everything
// else to HealthUnhealthy. Transport failures and undecodable bodies are
// returned as errors.
func (c *Client) Health(ctx context.Context) (types.HealthStatus, error) {
	status, payload, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return types.HealthStatus{State: types.HealthUnreachable}, err
	}

	h := types.HealthStatus{State: types.HealthUnhealthy}
	if s, ok := search(c.status, payload).(string); ok {
		h.Status = s
	} else if !IsSuccessStatus(status) {
		h.Status = StatusUnhealthyFallback
	} else {
		return types.HealthStatus{State: types.HealthUnreachable}, fmt.Errorf("%w: health payload has no status", ErrMalformedResponse)
	}
	if h.Status == StatusHealthy {
		h.State = types.HealthHealthy
	}
	h.AvailableCapacity = searchInt(c.available, payload)
	h.TotalSnapshots = searchInt(c.total, payload)
	h.UsedSnapshots = searchInt(c.used, payload)
	if msg, ok := search(c.errField, payload).(string); ok {
		h.Error = msg
	}
	return h, nil
}

// call performs a request and converts non-2xx responses to *APIError
func (c *Client) call(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	status, payload, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if !IsSuccessStatus(status) {
		apiErr := &APIError{StatusCode: status}
		if msg, ok := search(c.errField, payload).(string); ok {
			apiErr.Message = msg
		}
		return nil, apiErr
	}
	return payload, nil
}

// do sends one request and decodes the JSON body
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (int, interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", FormatDuration(time.Since(start).Milliseconds()),
		"size", FormatSize(len(data)),
	)

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		if !IsSuccessStatus(resp.StatusCode) {
			return resp.StatusCode, nil, &APIError{StatusCode: resp.StatusCode}
		}
		return resp.StatusCode, nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return resp.StatusCode, payload, nil
}

func search(jp *jmespath.JMESPath, payload interface{}) interface{} {
	if payload == nil {
		return nil
	}
	v, err := jp.Search(payload)
	if err != nil {
		return nil
	}
	return v
}

func searchString(jp *jmespath.JMESPath, payload interface{}) (string, error) {
	s, ok := search(jp, payload).(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string", ErrMalformedResponse)
	}
	return s, nil
}

func searchStrings(jp *jmespath.JMESPath, payload interface{}) ([]string, error) {
	raw, ok := search(jp, payload).([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of strings", ErrMalformedResponse)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string entry in list", ErrMalformedResponse)
		}
		out = append(out, s)
	}
	return out, nil
}

func searchInt(jp *jmespath.JMESPath, payload interface{}) int {
	switch v := search(jp, payload).(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
