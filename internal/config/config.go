// Package config loads optional invocation defaults from a config file, so
// recurring flag sets (result dirs, DB path, output style) do not have to be
// retyped on every run. Flags always win over file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = ".seistats.yaml"

// Config mirrors the stats command's flags.
type Config struct {
	Dirs     []string `yaml:"dirs" json:"dirs"`
	Files    []string `yaml:"files" json:"files"`
	Sort     bool     `yaml:"sort" json:"sort"`
	DB       string   `yaml:"db" json:"db"`
	Debug    string   `yaml:"debug" json:"debug"`
	Markdown bool     `yaml:"markdown" json:"markdown"`
}

// LoadFromPath reads a config file (YAML or JSON). Format is detected by
// extension (.yaml/.yml, .json) or by content (first non-whitespace char).
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a config from bytes. ext is the file extension for the format
// hint; empty means detect from content.
func Load(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch ext {
	case ".yaml":
		return parseYAML(data)
	case ".json":
		return parseJSON(data)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &c, nil
}

func parseJSON(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}
	return &c, nil
}
