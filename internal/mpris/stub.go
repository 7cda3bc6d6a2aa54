//go:build !linux

package mpris

import (
	"context"
	"log/slog"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/playback"
)

// Session is the engine handle used by the adapter.
type Session interface {
	Exec(ctx context.Context, fn func(*playback.Engine) error) error
	Snapshot(ctx context.Context) (playback.Snapshot, error)
	Subscribe() *playback.Subscription
}

// Options describes how pages appear to MPRIS clients.
type Options struct {
	Title  func(catalog.Page) string
	Artist string
	Album  string
	Logger *slog.Logger
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Session, _ Options) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
