// Package config loads the optional ripple.yaml project file and
// resolves defaults from the enclosing Go module.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional ripple.yaml configuration.
type Config struct {
	App  AppConfig  `yaml:"app"`
	Demo DemoConfig `yaml:"demo"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// DemoConfig contains defaults for the run and snapshot commands.
type DemoConfig struct {
	Default string `yaml:"default,omitempty"`
	Seconds int    `yaml:"seconds,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	AppName     string
	DefaultDemo string
	Seconds     int
	Format      string
}

// ValidFormats lists the snapshot output formats.
var ValidFormats = []string{"text", "png"}

// LoadOptional reads ripple.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "ripple.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read ripple.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ripple.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads ripple.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	demo := strings.TrimSpace(cfg.Demo.Default)
	if demo == "" {
		demo = "counter"
	}

	seconds := cfg.Demo.Seconds
	if seconds <= 0 {
		seconds = 3
	}

	format := strings.TrimSpace(cfg.Demo.Format)
	if format == "" {
		format = "text"
	}
	if err := validateFormat(format); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName,
		DefaultDemo: demo,
		Seconds:     seconds,
		Format:      format,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "ripple_app"
	}
	return base
}

func validateFormat(format string) error {
	for _, f := range ValidFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid demo.format %q: must be one of %v", format, ValidFormats)
}
