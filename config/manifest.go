// Package config loads the YAML manifest that tells the cmd/lightclient
// demo which store backend to use and where its fixture data lives.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a single light-client run: which store backend to
// use and where its data lives on disk.
type Manifest struct {
	StoreBackend string `yaml:"store_backend"` // "memory" or "pebble"
	StorePath    string `yaml:"store_path"`
	FixturePath  string `yaml:"fixture_path"`
}

// LoadManifest reads and parses a manifest YAML file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("config: parse manifest: %w", err)
	}
	if m.StoreBackend == "" {
		m.StoreBackend = "memory"
	}
	return m, nil
}
