package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/studiowebux/snapgen/internal/logging"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// Server represents the mock generation service
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	logs       []RequestLog
	logsMutex  sync.RWMutex
	workdir    string
	notifyCh   chan struct{} // Channel to notify when new log arrives
	logger     *slog.Logger

	stateMutex sync.Mutex
	used       int
}

// NewServer creates a new mock server
func NewServer(config *Config, workdir string, logger *slog.Logger) *Server {
	if config.Port == 0 {
		config.Port = 5000
	}
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Capacity == 0 {
		config.Capacity = 100
	}
	if config.MaxCount == 0 {
		config.MaxCount = 100
	}

	return &Server{
		config:   config,
		logs:     make([]RequestLog, 0),
		workdir:  workdir,
		notifyCh: make(chan struct{}, 100),
		logger:   logging.OrDiscard(logger),
	}
}

// Handler returns the routed handler without binding a socket
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Exact paths get their own chi node; everything else falls through to
	// the catch-all so prefix and regex routes keep first-match ordering
	registered := make(map[string]bool)
	for _, route := range s.config.Routes {
		exact := route.PathType == "" || route.PathType == "exact"
		if !exact || registered[route.Path] || !strings.HasPrefix(route.Path, "/") || route.Path == "/" {
			continue
		}
		registered[route.Path] = true
		r.HandleFunc(route.Path, s.handleRequest)
	}
	r.HandleFunc("/*", s.handleRequest)
	r.NotFound(s.handleRequest)

	return r
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("mock server error", "error", err)
		}
	}()

	s.logger.Info("mock server started", "address", s.GetAddress())
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleRequest handles incoming HTTP requests
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bodyBytes, _ := io.ReadAll(r.Body)
	r.Body.Close()
	requestBody := string(bodyBytes)

	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)

	route := s.findMatchingRoute(r.Method, r.URL.Path)

	var status int
	var responseBody string
	var matchedRule string

	if route == nil {
		status = http.StatusNotFound
		responseBody = mustJSON(errorBody(fmt.Sprintf("Mock server: No route configured for %s %s", r.Method, r.URL.Path)))
		matchedRule = "none"
		w.Header().Set("Content-Type", "application/json")
	} else {
		if route.Delay > 0 {
			time.Sleep(time.Duration(route.Delay) * time.Millisecond)
		}

		status = route.Status
		if status == 0 {
			status = http.StatusOK
		}

		w.Header().Set("Content-Type", "application/json")
		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}

		switch {
		case route.Generator != "":
			var payload interface{}
			status, payload = s.generate(route.Generator, bodyBytes)
			responseBody = mustJSON(payload)
		case route.BodyFile != "":
			filePath := route.BodyFile
			if !filepath.IsAbs(filePath) {
				filePath = filepath.Join(s.workdir, filePath)
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				status = http.StatusInternalServerError
				responseBody = mustJSON(errorBody(fmt.Sprintf("Mock server: Failed to read body file %s: %v", route.BodyFile, err)))
			} else {
				responseBody = string(data)
			}
		default:
			responseBody = route.Body
		}

		matchedRule = route.Name
		if matchedRule == "" {
			matchedRule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
	}

	w.WriteHeader(status)
	w.Write([]byte(responseBody))

	duration := time.Since(start)

	s.logger.Debug("mock request",
		"id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"rule", matchedRule,
		"duration", duration,
	)

	if s.config.Logging {
		s.logRequest(RequestLog{
			ID:          requestID,
			Timestamp:   start,
			Method:      r.Method,
			Path:        r.URL.Path,
			Headers:     flattenHeaders(r.Header),
			Body:        requestBody,
			MatchedRule: matchedRule,
			Status:      status,
			Duration:    duration,
		})
	}
}

// findMatchingRoute finds the first route that matches the method and path
func (s *Server) findMatchingRoute(method, path string) *Route {
	for _, route := range s.config.Routes {
		if !strings.EqualFold(route.Method, method) {
			continue
		}

		pathType := route.PathType
		if pathType == "" {
			pathType = "exact"
		}

		matched := false
		switch pathType {
		case "exact":
			matched = route.Path == path
		case "prefix":
			matched = strings.HasPrefix(path, route.Path)
		case "regex":
			if re, err := regexp.Compile(route.Path); err == nil {
				matched = re.MatchString(path)
			}
		}

		if matched {
			return &route
		}
	}

	return nil
}

// available reports the snapshots the generators can still consume
func (s *Server) available() int {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	if n := s.config.Capacity - s.used; n > 0 {
		return n
	}
	return 0
}

// consume takes n snapshots, reporting false when there are not enough
func (s *Server) consume(n int) bool {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	if s.config.Capacity-s.used < n {
		return false
	}
	s.used += n
	return true
}

// Refill makes the full capacity available again
func (s *Server) Refill() {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.used = 0
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// NotifyChannel returns the notification channel
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// flattenHeaders converts http.Header to map[string]string (first value only)
func flattenHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"error":"failed to encode response"}`
	}
	return string(data)
}
