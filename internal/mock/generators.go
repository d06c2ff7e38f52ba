package mock

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/studiowebux/snapgen/internal/types"
)

const (
	maxStringLength = 256
	minWordCount    = 3
	maxWordCount    = 12
	quickLength     = 32
	specialChars    = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// wordlist is a small stand-in dictionary
var wordlist = []string{
	"anchor", "basket", "candle", "dolphin", "ember", "falcon", "garnet", "harbor",
	"island", "juniper", "kettle", "lantern", "meadow", "nectar", "orchid", "pebble",
	"quartz", "ripple", "saddle", "timber", "umber", "velvet", "walnut", "yonder",
	"zephyr", "bramble", "cobalt", "drizzle", "fennel", "glacier", "hollow", "indigo",
}

type generateBody struct {
	Length    *int     `json:"length"`
	Count     *int     `json:"count"`
	CharTypes []string `json:"charTypes"`
}

type passphraseBody struct {
	WordCount          *int  `json:"wordCount"`
	CapitalizeWords    *bool `json:"capitalizeWords"`
	SeparateWithDashes bool  `json:"separateWithDashes"`
	AddDigit           bool  `json:"addDigit"`
}

// generate produces the status and JSON body for a generator route
func (s *Server) generate(name string, body []byte) (int, interface{}) {
	switch name {
	case GeneratorStrings:
		return s.generateStrings(body)
	case GeneratorPassphrase:
		return s.generatePassphrase(body)
	case GeneratorHealth:
		return http.StatusOK, s.health()
	case GeneratorQuickString:
		if !s.consume(1) {
			return http.StatusInternalServerError, errorBody("No snapshots available")
		}
		str, err := randomString(quickLength, types.DefaultCharTypes)
		if err != nil {
			return http.StatusInternalServerError, errorBody(err.Error())
		}
		return http.StatusOK, map[string]string{"string": str}
	case GeneratorQuickPassphrase:
		if !s.consume(1) {
			return http.StatusInternalServerError, errorBody("No snapshots available")
		}
		p, err := randomPassphrase(3, true, true, true)
		if err != nil {
			return http.StatusInternalServerError, errorBody(err.Error())
		}
		return http.StatusOK, map[string]string{"passphrase": p}
	}
	return http.StatusInternalServerError, errorBody("unknown generator " + name)
}

func (s *Server) generateStrings(body []byte) (int, interface{}) {
	var req generateBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return http.StatusBadRequest, errorBody("Invalid JSON body")
		}
	}

	length, count := 16, 1
	if req.Length != nil {
		length = *req.Length
	}
	if req.Count != nil {
		count = *req.Count
	}

	if length < 1 || length > maxStringLength {
		return http.StatusBadRequest, errorBody(fmt.Sprintf("Length must be between 1 and %d", maxStringLength))
	}
	if count < 1 || count > s.config.MaxCount {
		return http.StatusBadRequest, errorBody(fmt.Sprintf("Count must be between 1 and %d", s.config.MaxCount))
	}
	if available := s.available(); count > available {
		return http.StatusBadRequest, errorBody(fmt.Sprintf("Not enough entropy available. Requested %d, but only %d snapshots available", count, available))
	}

	set := make([]types.CharType, 0, len(req.CharTypes))
	for _, tag := range req.CharTypes {
		if c, ok := types.ParseCharType(tag); ok {
			set = append(set, c)
		}
	}
	if len(set) == 0 {
		return http.StatusBadRequest, errorBody("At least one character type must be selected")
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		str, err := randomString(length, set)
		if err != nil {
			return http.StatusInternalServerError, errorBody(err.Error())
		}
		out = append(out, str)
	}
	s.consume(count)
	return http.StatusOK, map[string][]string{"strings": out}
}

func (s *Server) generatePassphrase(body []byte) (int, interface{}) {
	var req passphraseBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return http.StatusBadRequest, errorBody("Invalid JSON body")
		}
	}

	wordCount := 4
	if req.WordCount != nil {
		wordCount = *req.WordCount
	}
	capitalize := true
	if req.CapitalizeWords != nil {
		capitalize = *req.CapitalizeWords
	}

	if wordCount < minWordCount || wordCount > maxWordCount {
		return http.StatusBadRequest, errorBody(fmt.Sprintf("Word count must be between %d and %d", minWordCount, maxWordCount))
	}
	if !s.consume(1) {
		return http.StatusInternalServerError, errorBody("No snapshots available")
	}

	p, err := randomPassphrase(wordCount, capitalize, req.SeparateWithDashes, req.AddDigit)
	if err != nil {
		return http.StatusInternalServerError, errorBody(err.Error())
	}
	return http.StatusOK, map[string]string{"passphrase": p}
}

func (s *Server) health() map[string]interface{} {
	available := s.available()
	status := "healthy"
	if available == 0 {
		status = "critical"
	} else if available <= 5 {
		status = "warning"
	}

	s.stateMutex.Lock()
	used := s.used
	s.stateMutex.Unlock()

	return map[string]interface{}{
		"status":              status,
		"available_snapshots": available,
		"total_snapshots":     s.config.Capacity,
		"used_snapshots":      used,
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func charset(set []types.CharType) string {
	var b strings.Builder
	for _, c := range types.NormalizeCharTypes(set) {
		switch c {
		case types.CharUppercase:
			b.WriteString("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
		case types.CharLowercase:
			b.WriteString("abcdefghijklmnopqrstuvwxyz")
		case types.CharNumbers:
			b.WriteString("0123456789")
		case types.CharSpecial:
			b.WriteString(specialChars)
		}
	}
	return b.String()
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read randomness: %w", err)
	}
	return int(v.Int64()), nil
}

func randomString(length int, set []types.CharType) (string, error) {
	chars := charset(set)
	if chars == "" {
		return "", fmt.Errorf("At least one character type must be selected")
	}
	out := make([]byte, length)
	for i := range out {
		idx, err := randomIndex(len(chars))
		if err != nil {
			return "", err
		}
		out[i] = chars[idx]
	}
	return string(out), nil
}

func randomPassphrase(wordCount int, capitalize, dashes, digit bool) (string, error) {
	digitAt := -1
	if digit {
		idx, err := randomIndex(wordCount)
		if err != nil {
			return "", err
		}
		digitAt = idx
	}

	words := make([]string, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		idx, err := randomIndex(len(wordlist))
		if err != nil {
			return "", err
		}
		word := wordlist[idx]
		if i == digitAt {
			d, err := randomIndex(10)
			if err != nil {
				return "", err
			}
			word += fmt.Sprintf("%d", d)
		}
		if capitalize {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		words = append(words, word)
	}

	sep := " "
	if dashes {
		sep = "-"
	}
	return strings.Join(words, sep), nil
}
