// Package catalog derives the glyph palette from a snippet definition file.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"glyph-panel/snippet"
)

// Glyph is one palette button: the displayed glyph, its human-readable name
// (shown as a tooltip) and a coarse category used for color-coding.
type Glyph struct {
	Glyph    string `json:"glyph"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DefaultCategory labels entries whose key carries no "<Category>:" prefix
// and is the style fallback for categories without a color of their own.
const DefaultCategory = "other"

// Notifier surfaces user-visible notices. NotifyError reports recoverable
// failures; NotifyInfo reports expected conditions.
type Notifier interface {
	NotifyError(text string)
	NotifyInfo(text string)
}

// Source reads the raw snippet definition bytes. It is called on every Load
// so a changed file is picked up without restart.
type Source func() ([]byte, error)

// Loader builds glyph records from a snippet source.
type Loader struct {
	source Source
	notify Notifier
	log    zerolog.Logger
}

func NewLoader(source Source, notify Notifier, log zerolog.Logger) *Loader {
	return &Loader{source: source, notify: notify, log: log}
}

// Load reads and derives the glyph list. It is total: on any failure it
// surfaces one notification and one log entry, then returns an empty list so
// the panel still renders.
func (l *Loader) Load() []Glyph {
	data, err := l.source()
	if err != nil {
		l.fail("reading glyph snippets", err)
		return nil
	}
	entries, err := snippet.Parse(data)
	if err != nil {
		l.fail("parsing glyph snippets", err)
		return nil
	}
	return Derive(entries)
}

func (l *Loader) fail(what string, err error) {
	l.notify.NotifyError(fmt.Sprintf("Glyph palette unavailable: %s failed.", what))
	l.log.Error().Err(err).Msg(what + " failed")
}

// Derive maps snippet entries to glyph records, preserving entry order.
// Entries without a non-empty first body line yield no record.
func Derive(entries []snippet.Entry) []Glyph {
	glyphs := make([]Glyph, 0, len(entries))
	for _, e := range entries {
		if len(e.Body) == 0 || e.Body[0] == "" {
			continue
		}
		category, name := splitKey(e.Key)
		glyphs = append(glyphs, Glyph{
			Glyph:    e.Body[0],
			Name:     name,
			Category: category,
		})
	}
	return glyphs
}

// splitKey derives (category, name) from a "<Category>: <Name>" key. The
// category is lowercased with all whitespace removed; a key with no colon
// falls back to DefaultCategory with the whole key as the name.
func splitKey(key string) (category, name string) {
	before, after, found := strings.Cut(key, ":")
	if !found {
		return DefaultCategory, strings.TrimSpace(key)
	}
	category = strings.ToLower(strings.TrimSpace(before))
	category = strings.Join(strings.Fields(category), "")
	if category == "" {
		category = DefaultCategory
	}
	return category, strings.TrimSpace(after)
}
