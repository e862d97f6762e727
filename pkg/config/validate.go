package config

import (
	"fmt"
)

// Report is the outcome of Validate. Errors make the configuration invalid;
// warnings are reported but do not.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindIntList
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "a string"
	case kindInt:
		return "an integer"
	case kindFloat:
		return "a number"
	case kindBool:
		return "a boolean"
	case kindIntList:
		return "a list of integers"
	default:
		return "unknown"
	}
}

type keyRule struct {
	key  string
	kind valueKind
	// required is the error reported when a string is empty; blank means empty is allowed.
	required string
}

type sectionRule struct {
	name string
	keys []keyRule
}

var schema = []sectionRule{
	{name: "node", keys: []keyRule{
		{key: "name", kind: kindString, required: "Node name is required"},
		{key: "serial_device", kind: kindString, required: "Serial device is required"},
		{key: "time_zone", kind: kindString},
	}},
	{name: "meshtastic", keys: []keyRule{
		{key: "group_channel", kind: kindString, required: "Group channel is required"},
		{key: "dm_ack_enabled", kind: kindBool},
		{key: "dm_ack_text", kind: kindString},
		{key: "backlog_notice_threshold", kind: kindInt},
		{key: "backlog_notice_text", kind: kindString},
	}},
	{name: "ollama", keys: []keyRule{
		{key: "host", kind: kindString, required: "Ollama host is required"},
		{key: "port", kind: kindInt},
		{key: "model", kind: kindString, required: "Ollama model is required"},
		{key: "max_tokens", kind: kindInt},
		{key: "temperature", kind: kindFloat},
	}},
	{name: "rag", keys: []keyRule{
		{key: "db_path", kind: kindString, required: "RAG database path is required"},
		{key: "top_k", kind: kindInt},
		{key: "max_chunk_tokens", kind: kindInt},
		{key: "fallback_lexical", kind: kindBool},
	}},
	{name: "announce", keys: []keyRule{
		{key: "schedule_file", kind: kindString},
		{key: "pre_start_offsets", kind: kindIntList},
		{key: "post_start_repeat_minutes", kind: kindInt},
	}},
	{name: "logging", keys: []keyRule{
		{key: "level", kind: kindString},
		{key: "dir", kind: kindString},
	}},
}

// RequiredSections lists the sections every configuration must define, in check order.
func RequiredSections() []string {
	names := make([]string, len(schema))
	for i, s := range schema {
		names[i] = s.name
	}
	return names
}

// Validate checks the document against the required sections and keys.
// It never mutates the document and never fails; problems are reported.
func (s *Store) Validate() Report {
	report := ValidateDocument(s.Document())

	logger := s.log()
	for _, w := range report.Warnings {
		logger.Warn(w)
	}
	for _, e := range report.Errors {
		logger.Error(e)
	}
	if report.Valid {
		logger.Info("configuration validation passed")
	}
	return report
}

// ValidateDocument applies the validation rules to doc.
// Section problems are reported alone: key checks only run once every
// required section is present as a table.
func ValidateDocument(doc map[string]any) Report {
	var report Report

	for _, sec := range schema {
		v, ok := doc[sec.name]
		if !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("Missing required section: %s", sec.name))
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("Section %s must be a table", sec.name))
		}
	}
	if len(report.Errors) > 0 {
		return report
	}

	for _, sec := range schema {
		table := doc[sec.name].(map[string]any)
		for _, rule := range sec.keys {
			if msg := checkKey(sec.name, table, rule); msg != "" {
				report.Errors = append(report.Errors, msg)
			}
		}
	}

	ollama := doc["ollama"].(map[string]any)
	if n, ok := asInt(ollama["max_tokens"]); ok && n <= 0 {
		report.Warnings = append(report.Warnings, "Ollama max_tokens should be positive")
	}
	rag := doc["rag"].(map[string]any)
	if n, ok := asInt(rag["top_k"]); ok && n <= 0 {
		report.Warnings = append(report.Warnings, "RAG top_k should be positive")
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func checkKey(section string, table map[string]any, rule keyRule) string {
	path := section + "." + rule.key
	v, ok := table[rule.key]
	if !ok {
		return fmt.Sprintf("Missing required key: %s", path)
	}

	valid := false
	switch rule.kind {
	case kindString:
		var str string
		str, valid = v.(string)
		if valid && str == "" && rule.required != "" {
			return rule.required
		}
	case kindInt:
		_, valid = asInt(v)
	case kindFloat:
		_, valid = asFloat(v)
	case kindBool:
		_, valid = v.(bool)
	case kindIntList:
		valid = isIntList(v)
	}
	if !valid {
		return fmt.Sprintf("%s must be %s", path, rule.kind)
	}
	return ""
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func isIntList(v any) bool {
	switch l := v.(type) {
	case []int64, []int:
		return true
	case []any:
		for _, item := range l {
			if _, ok := asInt(item); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
