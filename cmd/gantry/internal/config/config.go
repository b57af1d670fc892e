// Package config loads the optional gantry.yaml configuration and resolves
// project-level defaults for the gantry CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/gantry/pkg/transition"
)

// Config represents the optional gantry.yaml configuration.
type Config struct {
	Demo    DemoConfig    `yaml:"demo"`
	Inspect InspectConfig `yaml:"inspect"`
	Journal JournalConfig `yaml:"journal"`
}

// DemoConfig contains defaults for the demo playground.
type DemoConfig struct {
	Kind       string `yaml:"kind,omitempty"`
	DurationMS int    `yaml:"duration_ms,omitempty"`
}

// InspectConfig contains inspector settings.
type InspectConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// JournalConfig contains journal settings.
type JournalConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	Kind        transition.Kind
	Duration    time.Duration
	InspectAddr string
	JournalPath string
}

// LoadOptional reads gantry.yaml in dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "gantry.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read gantry.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gantry.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads gantry.yaml (if present) and resolves defaults. dir may be
// any directory; the module path is resolved only when a go.mod is present.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	kind := transition.CoverFromBottom
	if v := strings.TrimSpace(cfg.Demo.Kind); v != "" {
		k, err := transition.ParseKind(v)
		if err != nil {
			return nil, fmt.Errorf("gantry.yaml: demo.kind: %w", err)
		}
		kind = k
	}

	duration := transition.DefaultDuration
	if cfg.Demo.DurationMS > 0 {
		duration = time.Duration(cfg.Demo.DurationMS) * time.Millisecond
	} else if cfg.Demo.DurationMS < 0 {
		return nil, fmt.Errorf("gantry.yaml: demo.duration_ms must not be negative (got %d)", cfg.Demo.DurationMS)
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath(dir),
		Kind:        kind,
		Duration:    duration,
		InspectAddr: strings.TrimSpace(cfg.Inspect.Addr),
		JournalPath: strings.TrimSpace(cfg.Journal.Path),
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod,
// falling back to the current directory when none exists.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	start := dir

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// modulePath reads the module path from dir's go.mod, or "" when absent.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
