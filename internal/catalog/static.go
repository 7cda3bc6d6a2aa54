package catalog

import (
	"fmt"
	"path"
)

const (
	// DefaultAudioDir is where the bundled recitation files live.
	DefaultAudioDir = "audio/baqara"

	staticPageCount = 48 // files S2-P2 .. S2-P49
	firstFilePage   = 2
	staticFileName  = "S2-P%d-عبد_الرشيد_الصوفي-حفص_عن_عاصم_الكوفي.mp3"
)

// Static returns the bundled Surah Al-Baqarah manifest.
// Player page 1 maps to file page 2, and so on.
func Static(audioDir, cover string) []Page {
	if audioDir == "" {
		audioDir = DefaultAudioDir
	}
	if cover == "" {
		cover = DefaultCover
	}

	pages := make([]Page, 0, staticPageCount)
	for i := range staticPageCount {
		pages = append(pages, Page{
			ID:       i + 1,
			AudioRef: joinRef(audioDir, fmt.Sprintf(staticFileName, i+firstFilePage)),
			CoverRef: cover,
		})
	}
	return pages
}

// joinRef joins a directory and a file name, keeping URLs intact.
func joinRef(dir, name string) string {
	if IsURL(dir) {
		return trimSlash(dir) + "/" + name
	}
	return path.Join(dir, name)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
