// Package i18n holds the interface translations.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

//go:embed lang/*.json
var builtin embed.FS

// Fallback is loaded when the requested language is unavailable.
const Fallback = "en"

// Vars are the placeholder values substituted by Format.
type Vars map[string]string

// Bundle is one language's translation table.
type Bundle struct {
	lang  string
	table map[string]string
}

// Load returns the bundle for lang, merging an override file from dir (if
// set) over the built-in table. When lang cannot be loaded it falls back to
// English, then to an empty table; the returned bundle is always usable and
// err describes what failed.
func Load(lang, dir string) (*Bundle, error) {
	table, err := loadTable(lang, dir)
	if err == nil {
		return &Bundle{lang: lang, table: table}, nil
	}
	if lang == Fallback {
		return &Bundle{lang: Fallback, table: map[string]string{}}, err
	}

	table, ferr := loadTable(Fallback, dir)
	if ferr != nil {
		return &Bundle{lang: Fallback, table: map[string]string{}}, errors.Join(err, ferr)
	}
	return &Bundle{lang: Fallback, table: table}, err
}

func loadTable(lang, dir string) (map[string]string, error) {
	if lang == "" || strings.ContainsAny(lang, `/\.`) {
		return nil, fmt.Errorf("invalid language %q", lang)
	}
	name := lang + ".json"

	table := map[string]string{}
	found := false

	if data, err := builtin.ReadFile("lang/" + name); err == nil {
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse built-in %s: %w", name, err)
		}
		found = true
	}

	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		switch {
		case err == nil:
			override := map[string]string{}
			if err := json.Unmarshal(data, &override); err != nil {
				return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, name), err)
			}
			maps.Copy(table, override)
			found = true
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	if !found {
		return nil, fmt.Errorf("no translations for %q", lang)
	}
	return table, nil
}

// Languages lists the built-in languages, sorted.
func Languages() []string {
	entries, _ := builtin.ReadDir("lang")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(langs)
	return langs
}

// NextLanguage returns the built-in language after lang, wrapping.
func NextLanguage(lang string) string {
	langs := Languages()
	i := slices.Index(langs, lang)
	return langs[(i+1)%len(langs)]
}

// Lang returns the bundle's language code.
func (b *Bundle) Lang() string { return b.lang }

// Direction is "rtl" for Arabic and "ltr" otherwise.
func (b *Bundle) Direction() string {
	if b.lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

// RTL reports whether text runs right to left.
func (b *Bundle) RTL() bool { return b.Direction() == "rtl" }

// T returns the translation for key, or key itself when missing.
func (b *Bundle) T(key string) string {
	if s, ok := b.table[key]; ok {
		return s
	}
	return key
}

// Or returns the translation for key, or def when missing.
func (b *Bundle) Or(key, def string) string {
	if s, ok := b.table[key]; ok {
		return s
	}
	return def
}

// Format translates key and replaces each {name} with vars[name].
func (b *Bundle) Format(key string, vars Vars) string {
	s := b.T(key)
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

// PageTitle is the heading for a page id.
func (b *Bundle) PageTitle(id int) string {
	return b.Format("pageTitle", Vars{"pageNumber": strconv.Itoa(id)})
}

// SurahReciter is the subtitle naming surah and reciter.
func (b *Bundle) SurahReciter() string {
	return b.Format("surahReciter", Vars{
		"surahName":   b.Or("surahName", "Surah"),
		"reciterName": b.Or("reciterName", "Reciter"),
	})
}

// Speed renders a playback rate with two decimals.
func (b *Bundle) Speed(speed float64) string {
	s := strconv.FormatFloat(speed, 'f', 2, 64)
	if _, ok := b.table["playbackSpeedValue"]; !ok {
		return s + "x"
	}
	return b.Format("playbackSpeedValue", Vars{"speed": s})
}

// PageBadge renders "Page X of N".
func (b *Bundle) PageBadge(id, total int) string {
	return fmt.Sprintf("%s %d %s %d", b.Or("pageLabel", "Page"), id, b.Or("ofLabel", "of"), total)
}
