package webservices

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UsarKey is the section key that redirects resolution to another section
const UsarKey = "Usar"

// Store is a read-only mapping from section to key/value pairs
type Store interface {
	// Get returns the value stored under key in section
	Get(section, key string) (string, bool)
}

// MapStore is an in-memory Store. It must not be modified once shared.
type MapStore map[string]map[string]string

// Get implements Store
func (m MapStore) Get(section, key string) (string, bool) {
	sec, ok := m[section]
	if !ok {
		return "", false
	}
	value, ok := sec[key]
	return value, ok
}

// Sections returns the number of sections in the store
func (m MapStore) Sections() int {
	return len(m)
}

// Load reads a webservices file, choosing the parser from its extension
// (.ini, .yaml or .yml)
func Load(path string) (MapStore, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return LoadINIFile(path)
	case ".yaml", ".yml":
		return LoadYAMLFile(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading webservices file: %w", err)
	}
	return data, nil
}
