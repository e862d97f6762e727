// Package core holds the types shared by the config and secrets stores.
package core

import "fmt"

// WarningCode classifies a non-fatal diagnostic.
type WarningCode string

const (
	WarnMissingFile     WarningCode = "missing_file"
	WarnPermissions     WarningCode = "permissions"
	WarnMalformedLine   WarningCode = "malformed_line"
	WarnPlaceholder     WarningCode = "placeholder"
	WarnSuspiciousValue WarningCode = "suspicious_value"
)

// Warning is a diagnostic that is reported but never aborts an operation.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	// Line is the 1-based line number for per-line diagnostics, zero otherwise.
	Line int `json:"line,omitempty"`
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// PermissionStatus is the outcome of checking a file for owner-only access.
type PermissionStatus int

const (
	PermissionOK PermissionStatus = iota
	PermissionWrong
	PermissionMissing
)

func (p PermissionStatus) String() string {
	switch p {
	case PermissionOK:
		return "ok"
	case PermissionWrong:
		return "wrong-permissions"
	case PermissionMissing:
		return "missing"
	default:
		return fmt.Sprintf("PermissionStatus(%d)", int(p))
	}
}

// LookupStatus tells why a dotted-path lookup did or did not produce a value.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	// LookupMissing means a segment of the path does not exist.
	LookupMissing
	// LookupNotTable means the path tried to descend into a value that is not a table.
	LookupNotTable
)

func (l LookupStatus) String() string {
	switch l {
	case LookupFound:
		return "found"
	case LookupMissing:
		return "missing"
	case LookupNotTable:
		return "not-a-table"
	default:
		return fmt.Sprintf("LookupStatus(%d)", int(l))
	}
}

// EventType represents the type of change observed on a watched file.
type EventType string

const (
	EventReload       EventType = "RELOAD"
	EventReloadFailed EventType = "RELOAD_FAILED"
)

// Event is emitted by watchers after reacting to a change on disk.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
	Err       error
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
