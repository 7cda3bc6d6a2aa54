package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/quran", filepath.Join(home, "quran")},
		{"tilde with nested path", "~/quran/audio/baqara", filepath.Join(home, "quran", "audio", "baqara")},
		{"absolute path unchanged", "/srv/audio", "/srv/audio"},
		{"relative path unchanged", "audio/baqara", "audio/baqara"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expandPath(tt.input); result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}

	if len(paths) > 1 && filepath.Base(filepath.Dir(paths[0])) != "pageplayer" {
		t.Errorf("user config path = %q, want .../pageplayer/config.toml", paths[0])
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	return path
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte("[catalog]\nsource = \"manifest\"\n"), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CatalogSource() != "manifest" {
		t.Errorf("CatalogSource() = %q, want manifest", cfg.CatalogSource())
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom([]string{writeConfig(t, "")})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want info", cfg.LogLevel())
	}
	if cfg.CatalogSource() != "static" {
		t.Errorf("CatalogSource() = %q, want static", cfg.CatalogSource())
	}
	if cfg.StorageBackend() != "sqlite" {
		t.Errorf("StorageBackend() = %q, want sqlite", cfg.StorageBackend())
	}
	if cfg.RemoteTimeout() != 10*time.Second {
		t.Errorf("RemoteTimeout() = %v, want 10s", cfg.RemoteTimeout())
	}
	if cfg.HasWebConfig() {
		t.Error("HasWebConfig() = true, want false")
	}
	if !cfg.MprisEnabled() {
		t.Error("MprisEnabled() = false, want true")
	}
	if cfg.IconStyle() != "unicode" {
		t.Errorf("IconStyle() = %q, want unicode", cfg.IconStyle())
	}
}

func TestLoad_MissingFilesIgnored(t *testing.T) {
	cfg, err := loadFrom([]string{filepath.Join(t.TempDir(), "nope.toml")})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("loadFrom() returned nil config")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"
file = "~/logs/pp.log"

[catalog]
source = "remote"
cover = "images/cover.jpg"

[catalog.remote]
manifest_url = "https://example.com/pages.json"
base_url = "https://cdn.example.com/audio/"
reciter = "sufi"
surah = "baqara"
timeout_seconds = 3

[storage]
backend = "bolt"
path = "/tmp/pp.bolt"

[i18n]
dir = "/etc/pageplayer/lang"

[ui]
icons = "nerd"

[web]
addr = "127.0.0.1:8765"
allowed_origins = ["http://localhost:3000"]

[mpris]
enabled = false
`)

	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if cfg.Log.File != filepath.Join(home, "logs", "pp.log") {
		t.Errorf("Log.File = %q, want expanded path", cfg.Log.File)
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want debug", cfg.LogLevel())
	}
	if cfg.CatalogSource() != "remote" {
		t.Errorf("CatalogSource() = %q, want remote", cfg.CatalogSource())
	}
	if cfg.Catalog.Remote.BaseURL != "https://cdn.example.com/audio" {
		t.Errorf("BaseURL = %q, want trailing slash removed", cfg.Catalog.Remote.BaseURL)
	}
	if cfg.Catalog.Remote.Reciter != "sufi" || cfg.Catalog.Remote.Surah != "baqara" {
		t.Errorf("Remote = %+v", cfg.Catalog.Remote)
	}
	if cfg.RemoteTimeout() != 3*time.Second {
		t.Errorf("RemoteTimeout() = %v, want 3s", cfg.RemoteTimeout())
	}
	if cfg.StorageBackend() != "bolt" || cfg.Storage.Path != "/tmp/pp.bolt" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.I18n.Dir != "/etc/pageplayer/lang" {
		t.Errorf("I18n.Dir = %q", cfg.I18n.Dir)
	}
	if !cfg.HasWebConfig() || len(cfg.Web.AllowedOrigins) != 1 {
		t.Errorf("Web = %+v", cfg.Web)
	}
	if cfg.MprisEnabled() {
		t.Error("MprisEnabled() = true, want false")
	}
	if cfg.IconStyle() != "nerd" {
		t.Errorf("IconStyle() = %q, want nerd", cfg.IconStyle())
	}
}

func TestLoad_LaterFileWins(t *testing.T) {
	user := writeConfig(t, "[log]\nlevel = \"warn\"\n[storage]\nbackend = \"bolt\"\n")
	local := writeConfig(t, "[log]\nlevel = \"error\"\n")

	cfg, err := loadFrom([]string{user, local})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.LogLevel() != "error" {
		t.Errorf("LogLevel() = %q, want error", cfg.LogLevel())
	}
	if cfg.StorageBackend() != "bolt" {
		t.Errorf("StorageBackend() = %q, want bolt from the first file", cfg.StorageBackend())
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	if _, err := loadFrom([]string{writeConfig(t, "invalid = [[[")}); err == nil {
		t.Error("loadFrom() expected error for invalid TOML, got nil")
	}
}

func TestGetters_InvalidValues(t *testing.T) {
	cfg := &Config{
		Log:     LogConfig{Level: "verbose"},
		Catalog: CatalogConfig{Source: "ftp", Remote: RemoteCatalogConfig{TimeoutSeconds: -4}},
		Storage: StorageConfig{Backend: "redis"},
		UI:      UIConfig{Icons: "emoji"},
	}

	if cfg.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want info", cfg.LogLevel())
	}
	if cfg.CatalogSource() != "static" {
		t.Errorf("CatalogSource() = %q, want static", cfg.CatalogSource())
	}
	if cfg.RemoteTimeout() != 10*time.Second {
		t.Errorf("RemoteTimeout() = %v, want 10s", cfg.RemoteTimeout())
	}
	if cfg.StorageBackend() != "sqlite" {
		t.Errorf("StorageBackend() = %q, want sqlite", cfg.StorageBackend())
	}
	if cfg.IconStyle() != "unicode" {
		t.Errorf("IconStyle() = %q, want unicode", cfg.IconStyle())
	}
}
