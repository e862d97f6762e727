package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aretw0/librarian/pkg/core"
)

// SplitPath breaks a dotted path into its segments.
// An empty path has no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func lookup(doc map[string]any, path string) (any, core.LookupStatus) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, core.LookupMissing
	}

	var cur any = doc
	for _, seg := range segments {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, core.LookupNotTable
		}
		v, exists := table[seg]
		if !exists {
			return nil, core.LookupMissing
		}
		cur = v
	}
	return cur, core.LookupFound
}

// assign walks all but the last segment, replacing anything that is not a table
// with a fresh one, then stores value under the last segment.
func assign(doc map[string]any, path string, value any) bool {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return false
	}

	table := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := table[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			table[seg] = next
		}
		table = next
	}
	table[segments[len(segments)-1]] = value
	return true
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = cloneValue(val)
		}
		return l
	case []map[string]any:
		l := make([]map[string]any, len(t))
		for i, val := range t {
			l[i] = cloneValue(val).(map[string]any)
		}
		return l
	default:
		return v
	}
}

// ParseValue interprets raw as a TOML value literal ("8", "true", "0.3",
// "[30, 10]", "\"text\"") and falls back to the raw string when it is not one.
func ParseValue(raw string) any {
	if strings.ContainsAny(raw, "\r\n") {
		return raw
	}

	holder := make(map[string]any)
	if _, err := toml.Decode("value = "+raw, &holder); err != nil {
		return raw
	}
	v, ok := holder["value"]
	if !ok {
		return raw
	}
	return v
}
