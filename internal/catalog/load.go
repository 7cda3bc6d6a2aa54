package catalog

import (
	"context"
	"fmt"
)

// Source selects where pages come from.
type Source string

const (
	SourceStatic   Source = "static"
	SourceManifest Source = "manifest"
	SourceRemote   Source = "remote"
)

// Options selects and configures a catalog source.
type Options struct {
	Source       Source
	AudioDir     string // static source
	ManifestPath string // manifest source
	Cover        string
	Remote       RemoteOptions
}

// Load produces the page list for the configured source.
func Load(ctx context.Context, opts Options) ([]Page, error) {
	switch opts.Source {
	case SourceStatic, "":
		return Static(opts.AudioDir, opts.Cover), nil
	case SourceManifest:
		return LoadManifestFile(opts.ManifestPath, opts.Cover)
	case SourceRemote:
		remote := opts.Remote
		if remote.Cover == "" {
			remote.Cover = opts.Cover
		}
		return NewClient(remote).Fetch(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrUnavailable, opts.Source)
	}
}
