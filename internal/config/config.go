// Package config holds the launcher's settings: built-in defaults, an
// optional YAML file and command-line overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/morozRed/launcher/internal/parser"
	"github.com/morozRed/launcher/internal/runner"
	"gopkg.in/yaml.v3"
)

// Clear modes accepted in the config file.
const (
	ClearAuto   = "auto"
	ClearAlways = "always"
	ClearNever  = "never"
)

// Config is the complete launcher configuration.
type Config struct {
	StartDir     string              `yaml:"start_dir"`
	Prefix       string              `yaml:"prefix"`
	Title        string              `yaml:"title"`
	Description  string              `yaml:"description"`
	Clear        string              `yaml:"clear"`
	Interpreters map[string][]string `yaml:"interpreters"`
	Exclude      []string            `yaml:"exclude"`
	LogFile      string              `yaml:"log_file"`
	Debug        bool                `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		StartDir:     ".",
		Prefix:       parser.DefaultMarkerPrefix,
		Title:        "Mother Lies",
		Description:  "Directory Navigator and Executor:",
		Clear:        ClearAuto,
		Interpreters: runner.DefaultInterpreters(),
	}
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file keep
// their default values; interpreters are merged per language.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(other *Config) {
	if other.StartDir != "" {
		c.StartDir = other.StartDir
	}
	if other.Prefix != "" {
		c.Prefix = other.Prefix
	}
	if other.Title != "" {
		c.Title = other.Title
	}
	if other.Description != "" {
		c.Description = other.Description
	}
	if other.Clear != "" {
		c.Clear = other.Clear
	}
	for lang, command := range other.Interpreters {
		c.Interpreters[lang] = command
	}
	c.Exclude = append(c.Exclude, other.Exclude...)
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	c.Debug = c.Debug || other.Debug
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if strings.TrimSpace(c.StartDir) == "" {
		return fmt.Errorf("start_dir must not be empty")
	}
	switch c.Clear {
	case ClearAuto, ClearAlways, ClearNever:
	default:
		return fmt.Errorf("invalid clear mode: %s (valid: %s, %s, %s)", c.Clear, ClearAuto, ClearAlways, ClearNever)
	}
	for lang, command := range c.Interpreters {
		if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
			return fmt.Errorf("interpreter for %s must name a command", lang)
		}
	}
	return nil
}
