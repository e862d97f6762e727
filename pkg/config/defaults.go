package config

import (
	_ "embed"
)

// DefaultPath is where the config file lives relative to the project root.
const DefaultPath = "configs/config.toml"

// DefaultDocument is written verbatim when Load finds no config file.
//
//go:embed default.toml
var DefaultDocument []byte
