package webservices

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a YAML document of the form
//
//	NFe_MT_H:
//	  NfeStatusServico_4.00: https://...
//
// into a Store
func FromYAML(data []byte) (MapStore, error) {
	var store MapStore
	if err := yaml.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing webservices YAML: %w", err)
	}
	if store == nil {
		store = make(MapStore)
	}
	return store, nil
}

// LoadYAMLFile reads and parses a YAML file
func LoadYAMLFile(path string) (MapStore, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}
