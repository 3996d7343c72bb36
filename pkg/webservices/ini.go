package webservices

import (
	"fmt"

	"gopkg.in/ini.v1"
)

var iniOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// FromINI parses an INI document into a Store
func FromINI(data []byte) (MapStore, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parsing webservices INI: %w", err)
	}

	store := make(MapStore)
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if len(keys) == 0 {
			continue
		}
		values := make(map[string]string, len(keys))
		for _, k := range keys {
			values[k.Name()] = k.String()
		}
		store[sec.Name()] = values
	}

	return store, nil
}

// FromINIString parses INI text into a Store
func FromINIString(s string) (MapStore, error) {
	return FromINI([]byte(s))
}

// LoadINIFile reads and parses an INI file
func LoadINIFile(path string) (MapStore, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return FromINI(data)
}
