// Package config implements the layered configuration store.
//
// The store owns a TOML document made of named sections (node, meshtastic,
// ollama, rag, announce, logging). It is loaded from disk, read and written
// through dotted paths such as "ollama.max_tokens", and persisted only when
// Save is called. Save refuses to run before a successful Load:
//
//	store := config.NewStore("configs/config.toml", config.WithLogger(logger))
//	if err := store.Load(); err != nil {
//		return err // errors.Is(err, core.ErrConfigSyntax) or core.ErrConfigIO
//	}
//	store.Set("node.name", "librarian-02")
//	if err := store.Save(); err != nil {
//		return err
//	}
//
// Loading a path that does not exist writes the built-in default document
// first, so a successful Load always leaves the file on disk.
//
// Validate never fails; it returns a Report listing errors and warnings so
// callers can keep running with an invalid configuration and show diagnostics.
package config
