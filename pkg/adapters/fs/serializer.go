package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a whole document in a specific format.
// A document is a table of named sections, each a table of settings.
type Serializer interface {
	// Parse reads from r and returns the decoded document.
	Parse(r io.Reader) (map[string]any, error)
	// Serialize converts the document to bytes.
	Serialize(doc map[string]any) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".toml": NewTOMLSerializer(),
		".json": NewJSONSerializer(false),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks a serializer by format name ("yaml") or by filename extension ("x.yml").
func SerializerFor(nameOrPath string) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(nameOrPath))
	if ext == "" {
		ext = "." + strings.ToLower(nameOrPath)
	}
	s, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q", nameOrPath)
	}
	return s, nil
}

// --- TOML Serializer ---

// TOMLSerializer handles reading and writing TOML documents.
type TOMLSerializer struct{}

func NewTOMLSerializer() *TOMLSerializer {
	return &TOMLSerializer{}
}

func (s *TOMLSerializer) Parse(r io.Reader) (map[string]any, error) {
	doc := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid toml: %w", err)
	}
	return doc, nil
}

func (s *TOMLSerializer) Serialize(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON documents.
type JSONSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid precision loss.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
// Optional strict mode prevents float64 conversion for large integers.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	decoder := json.NewDecoder(r)
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return doc, nil
}

func (s *JSONSerializer) Serialize(doc map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML documents.
type YAMLSerializer struct{}

func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return doc, nil
}

func (s *YAMLSerializer) Serialize(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
