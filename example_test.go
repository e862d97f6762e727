package librarian_test

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/librarian"
)

// Example_basic opens a fresh project directory and reads the defaults back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "librarian-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	app, err := librarian.Open(librarian.WithRoot(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	settings, err := app.Config.Settings()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(settings.Node.Name)
	fmt.Println(settings.Ollama.BaseURL())
	fmt.Println(app.SecretsLoad.Permission)
	// Output:
	// hdl-librarian-01
	// http://127.0.0.1:11434
	// missing
}

// Example_secrets stores a channel key and validates the secrets.
func Example_secrets() {
	tmpDir, err := os.MkdirTemp("", "librarian-secrets-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	app, err := librarian.Open(librarian.WithRoot(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(app.Secrets.Validate().Valid)
	if err := app.Secrets.Set("decomp25", "AQ=="); err != nil {
		log.Fatal(err)
	}
	fmt.Println(app.Secrets.Validate().Valid)
	fmt.Println(app.Secrets.Channels())
	// Output:
	// false
	// true
	// [decomp25]
}
