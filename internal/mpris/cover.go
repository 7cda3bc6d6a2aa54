//go:build linux

package mpris

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/llehouerou/pageplayer/internal/catalog"
)

// artURL turns a page cover reference into an MPRIS art URL. Remote covers
// pass through; local covers must exist and become file:// URLs.
func artURL(ref string) string {
	if ref == "" {
		return ""
	}
	if catalog.IsURL(ref) {
		return ref
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return (&url.URL{Scheme: "file", Path: abs}).String()
}
