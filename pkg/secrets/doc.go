// Package secrets stores per-channel pre-shared keys in a line-oriented file.
//
// Each non-comment line holds one "channel:psk" pair. The file must be readable
// by its owner only; a wider mode is reported through LoadResult.Permission and
// a warning, but does not stop loading. Unlike the config store, every Set is
// written to disk immediately.
package secrets
