// Package settings persists user preferences in a string key-value store.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "pageplayer"

// Keys keep the prefix used by earlier releases so existing stores carry over.
const (
	keyPrefix        = "quranPlayer_"
	KeyLanguage      = keyPrefix + "language"
	KeyTheme         = keyPrefix + "theme"
	KeyVolume        = keyPrefix + "volume"
	KeyMuted         = keyPrefix + "muted"
	KeyRepeatMode    = keyPrefix + "repeatMode"
	KeySpeed         = keyPrefix + "speed"
	KeyLastPageIndex = keyPrefix + "lastPageIndex"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown settings backend")

// Store is a string-keyed, string-valued persistent map.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// SetMany writes all pairs atomically.
	SetMany(kv map[string]string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Open opens the configured backend. An empty path selects the default
// location under the XDG data directory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		if path == "" {
			p, err := defaultPath("settings.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(path)
	case BackendBolt:
		if path == "" {
			p, err := defaultPath("settings.bolt")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func defaultPath(name string) (string, error) {
	return xdg.DataFile(filepath.Join(appName, name))
}
