package secrets

import (
	"fmt"
	"slices"

	"github.com/aretw0/librarian/pkg/core"
)

// RequiredChannels must have a key for the secrets to be valid.
var RequiredChannels = []string{"decomp25"}

// Placeholders are the literal values written by CreateExample and its older variants.
var Placeholders = []string{
	"EXAMPLE_PSK_VALUE_REPLACE_WITH_REAL_PSK",
	"EXAMPLE_PSK_VALUE",
	"TEST_PSK_VALUE",
}

// Report is the outcome of Validate.
type Report struct {
	Valid    bool           `json:"valid"`
	Missing  []string       `json:"missing,omitempty"`
	Warnings []core.Warning `json:"warnings,omitempty"`
}

// Validate checks that every required channel has a key.
// Placeholder keys are reported as warnings and never make the result invalid.
func (s *Store) Validate() Report {
	s.mu.RLock()
	var report Report
	for _, channel := range RequiredChannels {
		if _, ok := s.keys[channel]; !ok {
			report.Missing = append(report.Missing, channel)
		}
	}
	for _, channel := range s.order {
		if key := s.keys[channel]; slices.Contains(Placeholders, key) {
			report.Warnings = append(report.Warnings, core.Warning{
				Code:    core.WarnPlaceholder,
				Message: fmt.Sprintf("Channel %s has placeholder PSK value: %s", channel, key),
			})
		}
	}
	logger := s.logger
	s.mu.RUnlock()

	report.Valid = len(report.Missing) == 0

	if !report.Valid {
		logger.Error(fmt.Sprintf("Missing secrets for channels: %v", report.Missing))
	}
	for _, w := range report.Warnings {
		logger.Warn(w.Message)
	}
	return report
}

// Mask hides key material for display: the first eight characters followed by
// "..." when the key is longer than eight, otherwise "***".
func Mask(key string) string {
	r := []rune(key)
	if len(r) > 8 {
		return string(r[:8]) + "..."
	}
	return "***"
}
