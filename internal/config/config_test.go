package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want under %q", cfg.DataDir, home)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	content := "api_base = \"shop.example.net:9000\"\ndata_dir = \"" + tmp + "\"\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "shop.example.net:9000" {
		t.Fatalf("APIBase = %q, want shop.example.net:9000", cfg.APIBase)
	}
	if cfg.DataDir != tmp {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, tmp)
	}
}

func TestLoad_EmptyFieldsFallBack(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("api_base = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatal("Load returned nil error for invalid TOML")
	}
}

func TestPaths_DeriveFromDataDir(t *testing.T) {
	cfg := Config{DataDir: "/tmp/satchel-data"}
	if got := cfg.GuestCartPath(); got != filepath.Join("/tmp/satchel-data", "guest-cart.json") {
		t.Fatalf("GuestCartPath = %q", got)
	}
	if got := cfg.JournalPath(); got != filepath.Join("/tmp/satchel-data", "journal.log") {
		t.Fatalf("JournalPath = %q", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/tmp/satchel-data", "satchel.log") {
		t.Fatalf("LogPath = %q", got)
	}
}
