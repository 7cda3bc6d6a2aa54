package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "pageplayer/1.0"

// RemoteOptions configures where a remote manifest lives and how its file
// names map to audio URLs.
type RemoteOptions struct {
	ManifestURL string // JSON array of file names
	BaseURL     string
	Reciter     string
	Surah       string
	Cover       string
	Timeout     time.Duration
}

// Client fetches a remote page manifest.
type Client struct {
	httpClient *http.Client
	opts       RemoteOptions
}

// NewClient creates a manifest client.
func NewClient(opts RemoteOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
	}
}

// Fetch downloads the manifest and maps every file name to a page.
// All failures wrap ErrUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]Page, error) {
	if c.opts.ManifestURL == "" {
		return nil, fmt.Errorf("%w: no manifest url configured", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.ManifestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http request: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status: %s", ErrUnavailable, resp.Status)
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: manifest is empty", ErrUnavailable)
	}

	return FromFilenames(c.opts.BaseURL, c.opts.Reciter, c.opts.Surah, c.opts.Cover, names), nil
}

// FromFilenames builds pages from bare file names, prefixing each with
// base/reciter/surah. Ids start at 1.
func FromFilenames(base, reciter, surah, cover string, names []string) []Page {
	if cover == "" {
		cover = DefaultCover
	}
	prefix := strings.TrimSuffix(base, "/")
	for _, seg := range []string{reciter, surah} {
		if seg != "" {
			prefix += "/" + url.PathEscape(seg)
		}
	}

	pages := make([]Page, 0, len(names))
	for i, name := range names {
		pages = append(pages, Page{
			ID:       i + 1,
			AudioRef: prefix + "/" + url.PathEscape(name),
			CoverRef: cover,
		})
	}
	return pages
}
