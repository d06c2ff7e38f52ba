package history

import (
	"encoding/json"
	"time"

	"github.com/studiowebux/snapgen/internal/types"
)

// Outcome of a recorded submission
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusInvalid = "invalid"
)

// Entry is one submission. Generated values are never stored.
type Entry struct {
	ID          int64       `json:"id" yaml:"id"`
	Timestamp   time.Time   `json:"timestamp" yaml:"timestamp"`
	Kind        types.TabID `json:"kind" yaml:"kind"`
	Params      string      `json:"params" yaml:"params"`
	ResultCount int         `json:"resultCount" yaml:"resultCount"`
	Status      string      `json:"status" yaml:"status"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs  int64       `json:"durationMs" yaml:"durationMs"`
}

// NewEntry builds an entry from a request and its outcome
func NewEntry(req types.GenerationRequest, status string, resultCount int, errMsg string, duration time.Duration) Entry {
	params, err := json.Marshal(req)
	if err != nil {
		params = []byte("{}")
	}
	return Entry{
		Timestamp:   time.Now(),
		Kind:        req.Form(),
		Params:      string(params),
		ResultCount: resultCount,
		Status:      status,
		Error:       errMsg,
		DurationMs:  duration.Milliseconds(),
	}
}
