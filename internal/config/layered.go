package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// LayeredConfig retrieves the configuration for a package by merging
// contributions from several locations, from the highest priority to the
// lowest:
//
//   - the user config directory (%APPDATA%, $XDG_CONFIG_HOME, or ~/.config)
//   - the working directory's .config directory
//   - each working-directory ancestor's .config directory, with decreasing
//     priority
//   - the package's own config directory, if provided
//
// Within each directory, configurations are read from <name>.json and
// <name>.toml files; when both exist, the TOML file wins per key.
type LayeredConfig struct {
	pkg  string
	dirs []string
}

// NewLayeredConfig caches the available config directories for the package.
// packageDir points at the package's bundled config directory and may be
// empty.
func NewLayeredConfig(pkg, packageDir string) *LayeredConfig {
	l := &LayeredConfig{pkg: pkg}
	l.cacheConfigDirs(packageDir)
	return l
}

// Package returns the name of the package for this config.
func (l *LayeredConfig) Package() string {
	return l.pkg
}

// Dirs returns the cached config directories from the highest priority to
// the lowest.
func (l *LayeredConfig) Dirs() []string {
	dirs := make([]string, len(l.dirs))
	copy(dirs, l.dirs)
	return dirs
}

// Config retrieves the package configuration of the specified name as a
// merged key/value mapping.
func (l *LayeredConfig) Config(name string) (map[string]any, error) {
	sum := make(map[string]any)

	// Apply from the lowest priority to the highest so later layers win
	for i := len(l.dirs) - 1; i >= 0; i-- {
		for _, load := range []struct {
			ext       string
			unmarshal func([]byte, any) error
		}{
			{".json", json.Unmarshal},
			{".toml", func(data []byte, v any) error { return toml.Unmarshal(data, v) }},
		} {
			path := filepath.Join(l.dirs[i], name+load.ext)
			slog.Debug("Searching for config file", "path", path)

			data, err := os.ReadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}

			layer := make(map[string]any)
			if err := load.unmarshal(data, &layer); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			for key, value := range layer {
				sum[key] = value
			}
			slog.Debug("Loaded config file", "path", path, "bytes", len(data))
		}
	}

	return sum, nil
}

func (l *LayeredConfig) cacheConfigDirs(packageDir string) {
	if userDir := l.findUserConfigDir(); userDir != "" {
		l.dirs = append(l.dirs, userDir)
	}

	workDir, err := os.Getwd()
	if err != nil {
		slog.Debug("Could not resolve the working directory", "error", err)
	}
	for workDir != "" {
		candidate := filepath.Join(workDir, ".config", l.pkg)
		slog.Debug("Searching for work config directory", "path", candidate)
		if isDir(candidate) {
			l.dirs = append(l.dirs, candidate)
		}

		parent := filepath.Dir(workDir)
		if parent == workDir {
			break
		}
		workDir = parent
	}

	if packageDir != "" {
		slog.Debug("Searching for package config directory", "path", packageDir)
		if isDir(packageDir) {
			l.dirs = append(l.dirs, packageDir)
		}
	}

	slog.Debug("Found config directories", "package", l.pkg, "dirs", l.dirs)
	if len(l.dirs) == 0 {
		slog.Warn("No config directories found", "package", l.pkg)
	}
}

func (l *LayeredConfig) findUserConfigDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		path := filepath.Join(appData, l.pkg)
		if isDir(path) {
			return path
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		path := filepath.Join(xdg, l.pkg)
		if isDir(path) {
			return path
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		slog.Debug("Could not resolve the home directory", "error", err)
		return ""
	}
	path := filepath.Join(home, ".config", l.pkg)
	if isDir(path) {
		return path
	}

	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
