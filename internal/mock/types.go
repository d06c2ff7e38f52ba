package mock

import "time"

// Generator names a built-in dynamic responder that replaces a route's
// canned body
const (
	GeneratorStrings         = "strings"
	GeneratorPassphrase      = "passphrase"
	GeneratorHealth          = "health"
	GeneratorQuickString     = "quick-string"
	GeneratorQuickPassphrase = "quick-passphrase"
)

// Config represents the mock service configuration
type Config struct {
	Port     int     `json:"port" yaml:"port"`                             // Server port (default: 5000)
	Host     string  `json:"host" yaml:"host"`                             // Server host (default: localhost)
	Routes   []Route `json:"routes" yaml:"routes"`                         // Route definitions, first match wins
	Logging  bool    `json:"logging" yaml:"logging"`                       // Enable request logging
	Capacity int     `json:"capacity,omitempty" yaml:"capacity,omitempty"` // Snapshots available to generators (default: 100)
	MaxCount int     `json:"maxCount,omitempty" yaml:"maxCount,omitempty"` // Largest count accepted by /generate (default: 100)
}

// Route represents a mock route configuration
type Route struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`               // Route description
	Method      string            `json:"method" yaml:"method"`                               // HTTP method (GET, POST, etc.)
	Path        string            `json:"path" yaml:"path"`                                   // URL path pattern
	PathType    string            `json:"pathType,omitempty" yaml:"pathType,omitempty"`       // exact, prefix, regex (default: exact)
	Status      int               `json:"status" yaml:"status"`                               // HTTP status code
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`         // Response headers
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`               // Response body
	BodyFile    string            `json:"bodyFile,omitempty" yaml:"bodyFile,omitempty"`       // Path to response body file
	Generator   string            `json:"generator,omitempty" yaml:"generator,omitempty"`     // Built-in dynamic responder
	Delay       int               `json:"delay,omitempty" yaml:"delay,omitempty"`             // Response delay in milliseconds
	Description string            `json:"description,omitempty" yaml:"description,omitempty"` // Route documentation
}

// RequestLog represents a logged request
type RequestLog struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	Body        string            `json:"body"`
	MatchedRule string            `json:"matchedRule"`
	Status      int               `json:"status"`
	Duration    time.Duration     `json:"duration"`
}
