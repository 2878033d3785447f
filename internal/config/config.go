// Package config loads Satchel's TOML configuration and derives the data
// file paths from it. A missing config file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Satchel needs to reach the storefront API and
// keep its local files.
type Config struct {
	APIBase string
	DataDir string
}

const (
	defaultConfigPath = "~/.config/satchel/config.toml"
	defaultDataDir    = "~/.local/share/satchel"
	defaultAPIBase    = "127.0.0.1:8774"
)

// Load locates and parses the satchel config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, DataDir: defaultDataDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.DataDir = mustExpand(defaultDataDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase string `toml:"api_base"`
		DataDir string `toml:"data_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	cfg.DataDir = strings.TrimSpace(raw.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(cfg.DataDir)

	return cfg, nil
}

// GuestCartPath returns the durable slot that holds the guest cart.
func (c Config) GuestCartPath() string {
	return filepath.Join(c.dataDir(), "guest-cart.json")
}

// JournalPath returns the path of the activity journal.
func (c Config) JournalPath() string {
	return filepath.Join(c.dataDir(), "journal.log")
}

// LogPath returns the path of the debug log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "satchel.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
