package settings

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/studiowebux/snapgen/internal/types"
)

// LoadInt decodes a decimal integer. Anything else loads as absent.
func LoadInt(kv KV, key string) (int, bool) {
	raw, ok := kv.Load(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// SaveInt encodes v as a decimal string
func SaveInt(kv KV, key string, v int) error {
	return kv.Save(key, strconv.Itoa(v))
}

// LoadBool decodes "true" or "false". Anything else loads as absent.
func LoadBool(kv KV, key string) (bool, bool) {
	raw, ok := kv.Load(key)
	if !ok {
		return false, false
	}
	switch strings.TrimSpace(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// SaveBool encodes v as "true" or "false"
func SaveBool(kv KV, key string, v bool) error {
	return kv.Save(key, strconv.FormatBool(v))
}

// LoadCharTypes decodes a JSON array of tags. A malformed array or any
// unknown tag makes the whole value load as absent. An empty array is a
// valid, empty selection.
func LoadCharTypes(kv KV, key string) ([]types.CharType, bool) {
	raw, ok := kv.Load(key)
	if !ok {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return nil, false
	}
	set := make([]types.CharType, 0, len(tags))
	for _, tag := range tags {
		c, ok := types.ParseCharType(tag)
		if !ok {
			return nil, false
		}
		set = append(set, c)
	}
	return types.NormalizeCharTypes(set), true
}

// SaveCharTypes encodes the set as a JSON array in canonical order
func SaveCharTypes(kv KV, key string, set []types.CharType) error {
	norm := types.NormalizeCharTypes(set)
	tags := make([]string, len(norm))
	for i, c := range norm {
		tags[i] = string(c)
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return kv.Save(key, string(data))
}

// LoadTab decodes a tab id. Unknown ids load as absent.
func LoadTab(kv KV, key string) (types.TabID, bool) {
	raw, ok := kv.Load(key)
	if !ok {
		return "", false
	}
	return types.ParseTabID(strings.TrimSpace(raw))
}

// SaveTab encodes a tab id
func SaveTab(kv KV, key string, id types.TabID) error {
	return kv.Save(key, string(id))
}
