package types

import "strings"

// CharType is a character category the service can draw from
type CharType string

const (
	CharUppercase CharType = "uppercase"
	CharLowercase CharType = "lowercase"
	CharNumbers   CharType = "numbers"
	CharSpecial   CharType = "special"
)

// AllCharTypes lists every known tag in canonical (display and encoding) order
var AllCharTypes = []CharType{CharUppercase, CharLowercase, CharNumbers, CharSpecial}

// DefaultCharTypes is the selection used when nothing has been persisted
var DefaultCharTypes = []CharType{CharUppercase, CharLowercase, CharNumbers}

// Label returns the human readable name of the tag
func (c CharType) Label() string {
	switch c {
	case CharUppercase:
		return "Uppercase (A-Z)"
	case CharLowercase:
		return "Lowercase (a-z)"
	case CharNumbers:
		return "Numbers (0-9)"
	case CharSpecial:
		return "Special (!@#$...)"
	}
	return string(c)
}

// ParseCharType resolves a tag name, case-insensitively
func ParseCharType(s string) (CharType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCharTypes {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// NormalizeCharTypes removes duplicates and unknown tags and returns the
// remaining tags in canonical order. The result is never nil.
func NormalizeCharTypes(in []CharType) []CharType {
	seen := make(map[CharType]bool, len(in))
	for _, c := range in {
		seen[c] = true
	}
	out := make([]CharType, 0, len(in))
	for _, c := range AllCharTypes {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// ContainsCharType reports whether set holds c
func ContainsCharType(set []CharType, c CharType) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// TabID identifies one request form and its result panel
type TabID string

const (
	TabStrings    TabID = "strings"
	TabPassphrase TabID = "passphrase"
)

// AllTabs lists tabs in display order
var AllTabs = []TabID{TabStrings, TabPassphrase}

// DefaultTab is active when nothing has been persisted
const DefaultTab = TabStrings

// Label returns the tab caption
func (t TabID) Label() string {
	switch t {
	case TabStrings:
		return "Random Strings"
	case TabPassphrase:
		return "Passphrase"
	}
	return string(t)
}

// ParseTabID resolves a persisted tab id
func ParseTabID(s string) (TabID, bool) {
	for _, t := range AllTabs {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// GenerationRequest is one submission. Exactly one variant is active per
// submission, chosen by the active tab.
type GenerationRequest interface {
	// Form returns the tab that owns this request variant
	Form() TabID
}

// CharacterSetRequest asks for Count strings of Length characters
type CharacterSetRequest struct {
	Length    int        `json:"length" yaml:"length"`
	Count     int        `json:"count" yaml:"count"`
	CharTypes []CharType `json:"charTypes" yaml:"charTypes"`
}

// Form implements GenerationRequest
func (CharacterSetRequest) Form() TabID { return TabStrings }

// PassphraseRequest asks for one dictionary passphrase
type PassphraseRequest struct {
	WordCount     int  `json:"wordCount" yaml:"wordCount"`
	Capitalize    bool `json:"capitalizeWords" yaml:"capitalizeWords"`
	DashSeparated bool `json:"separateWithDashes" yaml:"separateWithDashes"`
	AppendDigit   bool `json:"addDigit" yaml:"addDigit"`
}

// Form implements GenerationRequest
func (PassphraseRequest) Form() TabID { return TabPassphrase }

// GenerationResult is what gets rendered after a successful submission.
// Strings are opaque and never re-parsed.
type GenerationResult struct {
	Title   string   `json:"title" yaml:"title"`
	Strings []string `json:"strings" yaml:"strings"`
}

// HealthState is the coarse service state shown in the status line
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthHealthy
	HealthUnhealthy
	HealthUnreachable
)

func (s HealthState) String() string {
	switch s {
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	case HealthUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// HealthStatus is one decoded health response
type HealthStatus struct {
	State             HealthState `json:"-" yaml:"-"`
	Status            string      `json:"status" yaml:"status"`
	AvailableCapacity int         `json:"available_snapshots" yaml:"available_snapshots"`
	TotalSnapshots    int         `json:"total_snapshots,omitempty" yaml:"total_snapshots,omitempty"`
	UsedSnapshots     int         `json:"used_snapshots,omitempty" yaml:"used_snapshots,omitempty"`
	Error             string      `json:"error,omitempty" yaml:"error,omitempty"`
}
