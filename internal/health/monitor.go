package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/types"
)

// Display classes for the status line
const (
	ClassChecking  = "checking"
	ClassHealthy   = "healthy"
	ClassUnhealthy = "unhealthy"
)

// Status line texts
const (
	TextChecking    = "Checking system status..."
	TextUnhealthy   = "System unhealthy"
	TextUnreachable = "Cannot connect to server"
)

// DefaultInterval is the fixed poll period
const DefaultInterval = 500 * time.Millisecond

// DefaultCeiling caps the count bound regardless of reported capacity
const DefaultCeiling = 100

// Checker performs one health request
type Checker interface {
	Health(ctx context.Context) (types.HealthStatus, error)
}

// Display is what the status line shows
type Display struct {
	Text  string
	Class string
}

// Result is one completed poll, tagged with its issue order
type Result struct {
	Seq         uint64
	Status      types.HealthStatus
	Err         error
	CompletedAt time.Time
}

// Options configures a Monitor
type Options struct {
	Interval time.Duration
	Ceiling  int
	// DiscardStale drops completions issued before the last applied one.
	// When false the most recently completed poll always wins.
	DiscardStale bool
	// Bound receives the derived count bound after each healthy poll
	Bound  func(bound int)
	Logger *slog.Logger
}

// Monitor polls service health and derives the count bound and status line
type Monitor struct {
	checker  Checker
	interval time.Duration
	ceiling  int
	discard  bool
	bound    func(int)
	logger   *slog.Logger

	mu          sync.Mutex
	issued      uint64
	lastApplied uint64
	display     Display
	last        types.HealthStatus
	lastBound   int
	hasBound    bool
}

// New creates a monitor that has not polled yet
func New(checker Checker, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Ceiling <= 0 {
		opts.Ceiling = DefaultCeiling
	}
	return &Monitor{
		checker:  checker,
		interval: opts.Interval,
		ceiling:  opts.Ceiling,
		discard:  opts.DiscardStale,
		bound:    opts.Bound,
		logger:   logging.OrDiscard(opts.Logger),
		display:  Display{Text: TextChecking, Class: ClassChecking},
	}
}

// Interval returns the poll period
func (m *Monitor) Interval() time.Duration { return m.interval }

// BoundFor caps capacity at ceiling
func BoundFor(capacity, ceiling int) int {
	if capacity < ceiling {
		return capacity
	}
	return ceiling
}

// Poll issues one health request. It is safe to call while earlier polls are
// still pending; each call gets the next sequence number at issue time.
func (m *Monitor) Poll(ctx context.Context) Result {
	m.mu.Lock()
	m.issued++
	seq := m.issued
	m.mu.Unlock()

	status, err := m.checker.Health(ctx)
	return Result{Seq: seq, Status: status, Err: err, CompletedAt: time.Now()}
}

// Apply folds a completed poll into the displayed status and, when healthy,
// into the count bound. It reports whether the result was applied.
func (m *Monitor) Apply(r Result) bool {
	m.mu.Lock()
	if m.discard && r.Seq < m.lastApplied {
		m.mu.Unlock()
		m.logger.Debug("discarding stale health result", "seq", r.Seq, "last_applied", m.lastApplied)
		return false
	}
	if r.Seq > m.lastApplied {
		m.lastApplied = r.Seq
	}

	var bound int
	healthy := false
	switch {
	case r.Err != nil:
		m.last = types.HealthStatus{State: types.HealthUnreachable}
		m.display = Display{Text: TextUnreachable, Class: ClassUnhealthy}
	case r.Status.State == types.HealthHealthy:
		healthy = true
		bound = BoundFor(r.Status.AvailableCapacity, m.ceiling)
		m.last = r.Status
		m.lastBound = bound
		m.hasBound = true
		m.display = Display{
			Text:  fmt.Sprintf("System healthy • %d snapshots available", r.Status.AvailableCapacity),
			Class: ClassHealthy,
		}
	default:
		m.last = r.Status
		m.display = Display{Text: TextUnhealthy, Class: ClassUnhealthy}
	}
	boundFn := m.bound
	m.mu.Unlock()

	if r.Err != nil {
		m.logger.Debug("health check failed", "seq", r.Seq, "error", r.Err)
	}

	// The bound callback runs outside the lock so it may read the monitor
	if healthy && boundFn != nil {
		boundFn(bound)
	}
	return true
}

// Status returns the current status line
func (m *Monitor) Status() Display {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.display
}

// Last returns the most recently applied health status
func (m *Monitor) Last() types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Bound returns the last derived bound, if any healthy poll was applied
func (m *Monitor) Bound() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastBound, m.hasBound
}

// Start polls every interval until ctx is done. Polls are not awaited:
// each tick starts a new one and deliver receives results in completion
// order. deliver is called from poll goroutines and must hand the result
// to whatever goroutine owns the state it touches.
func (m *Monitor) Start(ctx context.Context, deliver func(Result)) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		fire := func() {
			go func() {
				r := m.Poll(ctx)
				if ctx.Err() != nil {
					return
				}
				deliver(r)
			}()
		}

		fire()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fire()
			}
		}
	}()
}
