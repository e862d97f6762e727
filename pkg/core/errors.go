package core

import "errors"

// Common errors.
//
// Stores wrap the underlying cause so both the kind and the cause survive:
//
//	errors.Is(err, core.ErrConfigSyntax)
var (
	// ErrConfigSyntax means the config file exists but is not valid TOML.
	ErrConfigSyntax = errors.New("invalid config syntax")

	// ErrConfigIO covers every other failure reading or writing the config file.
	ErrConfigIO = errors.New("config io failure")

	// ErrSecretsIO means the secrets file is present but unreadable, or could not be written.
	ErrSecretsIO = errors.New("secrets io failure")

	// ErrInvalidSecret means a channel or key cannot be represented in the line format.
	ErrInvalidSecret = errors.New("invalid secret entry")

	// ErrNotLoaded means a store was asked to write before its file was read.
	ErrNotLoaded = errors.New("store not loaded")

	// ErrLockTimeout is returned when the advisory lock around a write could not be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for file lock")
)
