// Package librarian is the composition root for the Librarian node's
// configuration and secrets.
//
// A Librarian station reads its runtime settings from a TOML document
// (configs/config.toml) and its per-channel pre-shared keys from an
// owner-only text file (configs/channels.secrets). Open builds one store for
// each, loads them and hands back an App that the rest of the process shares:
//
//	app, err := librarian.Open(
//		librarian.WithRoot("/srv/librarian"),
//		librarian.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	settings, err := app.Config.Settings()
//	psk, ok := app.Secrets.Get(settings.Meshtastic.GroupChannel)
//
// Features:
//
//   - **Default document**: a missing config file is created from built-in defaults.
//   - **Dotted paths**: generic get/set such as "ollama.max_tokens" next to a typed Settings view.
//   - **Validation as data**: reports list errors and warnings instead of failing.
//   - **Owner-only secrets**: permission problems are surfaced as a structured status.
//   - **Safe writes**: write-then-rename plus an advisory lock file for every save.
//   - **Hot reload**: config.Watcher reloads the document when the file changes.
package librarian
