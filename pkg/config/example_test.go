package config_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/librarian/pkg/config"
)

func ExampleStore() {
	dir, err := os.MkdirTemp("", "librarian-example-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	store := config.NewStore(filepath.Join(dir, "configs", "config.toml"))
	if err := store.Load(); err != nil {
		panic(err)
	}

	fmt.Println(store.Get("node.name", ""))
	fmt.Println(store.Get("missing.key", "fallback"))

	store.Set("ollama.max_tokens", int64(512))
	fmt.Println(store.Get("ollama.max_tokens", 0))

	report := store.Validate()
	fmt.Println(report.Valid)
	// Output:
	// hdl-librarian-01
	// fallback
	// 512
	// true
}
