package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Catalog CatalogConfig `koanf:"catalog"`
	Storage StorageConfig `koanf:"storage"`
	I18n    I18nConfig    `koanf:"i18n"`
	UI      UIConfig      `koanf:"ui"`

	// Browser bridge (websocket server, disabled unless web.addr is set)
	Web WebConfig `koanf:"web"`

	// MPRIS media keys on Linux (default: enabled)
	Mpris MprisConfig `koanf:"mpris"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // "error", "warn", "info", "debug" (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/pageplayer/pageplayer.log
}

// CatalogConfig selects where pages come from.
type CatalogConfig struct {
	Source   string `koanf:"source"`    // "static", "manifest" or "remote" (default: "static")
	AudioDir string `koanf:"audio_dir"` // static source (default: "audio/baqara")
	Manifest string `koanf:"manifest"`  // manifest source, YAML file
	Cover    string `koanf:"cover"`

	Remote RemoteCatalogConfig `koanf:"remote"`
}

// RemoteCatalogConfig configures the remote file-name manifest.
type RemoteCatalogConfig struct {
	ManifestURL    string `koanf:"manifest_url"`
	BaseURL        string `koanf:"base_url"`
	Reciter        string `koanf:"reciter"`
	Surah          string `koanf:"surah"`
	TimeoutSeconds int    `koanf:"timeout_seconds"` // default: 10
}

// StorageConfig selects the settings backend.
type StorageConfig struct {
	Backend string `koanf:"backend"` // "sqlite" or "bolt" (default: "sqlite")
	Path    string `koanf:"path"`    // default: under $XDG_DATA_HOME/pageplayer
}

// I18nConfig locates translation overrides.
type I18nConfig struct {
	Dir string `koanf:"dir"` // optional directory of <lang>.json overriding the built-in tables
}

// UIConfig holds terminal presentation options.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none" (default: "unicode")
}

// WebConfig configures the websocket bridge.
type WebConfig struct {
	Addr           string   `koanf:"addr"`            // e.g. "127.0.0.1:8765"; empty disables the bridge
	AllowedOrigins []string `koanf:"allowed_origins"` // empty allows any origin
}

// MprisConfig toggles the D-Bus media player interface.
type MprisConfig struct {
	Enabled *bool `koanf:"enabled"`
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files override earlier ones
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Catalog.AudioDir = expandPath(cfg.Catalog.AudioDir)
	cfg.Catalog.Manifest = expandPath(cfg.Catalog.Manifest)
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.I18n.Dir = expandPath(cfg.I18n.Dir)

	cfg.Catalog.Remote.BaseURL = strings.TrimSuffix(cfg.Catalog.Remote.BaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/pageplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pageplayer", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LogLevel returns the configured level name, defaulting to "info".
func (c *Config) LogLevel() string {
	switch l := strings.ToLower(c.Log.Level); l {
	case "error", "warn", "info", "debug":
		return l
	default:
		return "info"
	}
}

// CatalogSource returns the configured source, defaulting to "static".
func (c *Config) CatalogSource() string {
	switch s := strings.ToLower(c.Catalog.Source); s {
	case "manifest", "remote":
		return s
	default:
		return "static"
	}
}

// RemoteTimeout returns the remote fetch timeout with the default applied.
func (c *Config) RemoteTimeout() time.Duration {
	if c.Catalog.Remote.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Catalog.Remote.TimeoutSeconds) * time.Second
}

// StorageBackend returns the settings backend, defaulting to "sqlite".
func (c *Config) StorageBackend() string {
	if strings.EqualFold(c.Storage.Backend, "bolt") {
		return "bolt"
	}
	return "sqlite"
}

// HasWebConfig returns true if the websocket bridge is configured.
func (c *Config) HasWebConfig() bool {
	return c.Web.Addr != ""
}

// MprisEnabled returns whether media keys are enabled (default: true).
func (c *Config) MprisEnabled() bool {
	return c.Mpris.Enabled == nil || *c.Mpris.Enabled
}

// IconStyle returns the configured icon style (default: "unicode").
func (c *Config) IconStyle() string {
	switch c.UI.Icons {
	case "nerd", "none":
		return c.UI.Icons
	default:
		return "unicode"
	}
}
