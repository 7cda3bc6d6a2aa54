package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxDownloadSize bounds a single remote page download.
const maxDownloadSize = 256 << 20

// memFile is a downloaded resource held in memory.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// isRemote reports whether ref is an http(s) URL.
func isRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// refExt returns the lowercased extension of a path or URL reference,
// ignoring any query string.
func refExt(ref string) string {
	if isRemote(ref) {
		u, _ := url.Parse(ref)
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(filepath.Ext(ref))
}

// openSource opens a local file or downloads a remote one.
func openSource(ctx context.Context, client *http.Client, log *slog.Logger, ref string) (io.ReadSeekCloser, error) {
	if !isRemote(ref) {
		return os.Open(ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("fetch %s: larger than %s", ref, humanize.IBytes(maxDownloadSize))
	}

	log.Debug("downloaded page audio", "ref", ref, "size", humanize.IBytes(uint64(len(data))))
	return memFile{bytes.NewReader(data)}, nil
}
