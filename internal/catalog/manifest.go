package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifestFile is the on-disk YAML layout:
//
//	pages:
//	  - id: 1
//	    audio: audio/page1.mp3
//	    cover: images/cover.jpg
type manifestFile struct {
	Pages []manifestPage `yaml:"pages"`
}

type manifestPage struct {
	ID    int    `yaml:"id"`
	Audio string `yaml:"audio"`
	Cover string `yaml:"cover"`
}

// LoadManifestFile reads a YAML manifest. Relative audio paths are resolved
// against the manifest's directory.
func LoadManifestFile(path, defaultCover string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read manifest: %w", ErrUnavailable, err)
	}
	pages, err := ParseManifest(data, defaultCover)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range pages {
		ref := pages[i].AudioRef
		if !IsURL(ref) && !filepath.IsAbs(ref) {
			pages[i].AudioRef = filepath.Join(dir, ref)
		}
	}
	return pages, nil
}

// ParseManifest decodes a YAML manifest. Entries without an audio reference
// are rejected; missing ids are assigned sequentially from 1.
func ParseManifest(data []byte, defaultCover string) ([]Page, error) {
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %w", ErrUnavailable, err)
	}
	if len(mf.Pages) == 0 {
		return nil, fmt.Errorf("%w: manifest has no pages", ErrUnavailable)
	}
	if defaultCover == "" {
		defaultCover = DefaultCover
	}

	pages := make([]Page, 0, len(mf.Pages))
	for i, mp := range mf.Pages {
		if mp.Audio == "" {
			return nil, fmt.Errorf("%w: manifest entry %d has no audio", ErrUnavailable, i)
		}
		cover := mp.Cover
		if cover == "" {
			cover = defaultCover
		}
		pages = append(pages, Page{ID: mp.ID, AudioRef: mp.Audio, CoverRef: cover})
	}
	Renumber(pages)
	return pages, nil
}
