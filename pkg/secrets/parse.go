package secrets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/librarian/pkg/core"
)

// Entry is one channel:psk pair read from a secrets file.
type Entry struct {
	Channel string
	Key     string
	// Line is the 1-based line the entry was read from.
	Line int
}

// maxLineSize bounds a single line; key material is short, comments may not be.
const maxLineSize = 1024 * 1024

// Parse reads secrets lines from r in file order.
//
// Blank lines and lines starting with '#' are ignored. A line without ':' is
// skipped and reported as a WarnMalformedLine warning carrying its line number;
// the line itself is masked since it may hold key material.
// The first ':' separates channel from key and both halves are trimmed.
// Duplicates are returned as they appear; the caller decides precedence.
// The only error is a failure to read r.
func Parse(r io.Reader) ([]Entry, []core.Warning, error) {
	var (
		entries  []Entry
		warnings []core.Warning
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if lineNum == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		line := strings.TrimSpace(text)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		channel, key, ok := strings.Cut(line, ":")
		if !ok {
			warnings = append(warnings, core.Warning{
				Code:    core.WarnMalformedLine,
				Message: fmt.Sprintf("Invalid secrets format at line %d: %s", lineNum, Mask(line)),
				Line:    lineNum,
			})
			continue
		}

		entry := Entry{
			Channel: strings.TrimSpace(channel),
			Key:     strings.TrimSpace(key),
			Line:    lineNum,
		}
		if entry.Channel == "" || entry.Key == "" {
			warnings = append(warnings, core.Warning{
				Code:    core.WarnSuspiciousValue,
				Message: fmt.Sprintf("Empty channel or key at line %d", lineNum),
				Line:    lineNum,
			})
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return entries, warnings, nil
}

// Render formats entries as a secrets file: the header lines, one blank line,
// then one channel:psk line per entry.
func Render(header []string, entries []Entry) []byte {
	var buf bytes.Buffer
	for _, h := range header {
		buf.WriteString(h)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	for _, e := range entries {
		buf.WriteString(e.Channel)
		buf.WriteByte(':')
		buf.WriteString(e.Key)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// checkEntry rejects values that would not survive a round trip through Parse.
func checkEntry(channel, key string) error {
	switch {
	case strings.TrimSpace(channel) == "":
		return fmt.Errorf("%w: channel is required", core.ErrInvalidSecret)
	case channel != strings.TrimSpace(channel), key != strings.TrimSpace(key):
		return fmt.Errorf("%w: surrounding whitespace would be lost", core.ErrInvalidSecret)
	case strings.ContainsAny(channel, ":\r\n"):
		return fmt.Errorf("%w: channel %q contains ':' or a line break", core.ErrInvalidSecret, channel)
	case strings.HasPrefix(channel, "#"):
		return fmt.Errorf("%w: channel %q would be read as a comment", core.ErrInvalidSecret, channel)
	case strings.ContainsAny(key, "\r\n"):
		return fmt.Errorf("%w: key for %q contains a line break", core.ErrInvalidSecret, channel)
	}
	return nil
}
