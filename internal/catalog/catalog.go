// Package catalog builds the ordered list of pages the player walks through.
//
// A catalog is immutable once loaded. Index 0..N-1 is the playback order;
// Page.ID is only used for display ("Page 7").
package catalog

import (
	"errors"
	"strings"
)

// ErrUnavailable is returned when no page list could be produced.
var ErrUnavailable = errors.New("catalog unavailable")

// DefaultCover is used for pages that do not carry their own cover image.
const DefaultCover = "images/quran_cover_placeholder.jpg"

// Page is one unit of audio content.
type Page struct {
	ID       int
	AudioRef string
	CoverRef string
}

// IsRemote reports whether the page audio must be fetched over HTTP.
func (p Page) IsRemote() bool {
	return IsURL(p.AudioRef)
}

// IsURL reports whether ref is an http(s) locator.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Renumber assigns sequential display ids starting at 1 to pages without one.
func Renumber(pages []Page) {
	for i := range pages {
		if pages[i].ID <= 0 {
			pages[i].ID = i + 1
		}
	}
}
