// Package catalog provides the immutable design pattern catalog.
//
// A Catalog is constructed once from an ordered sequence of entries and is
// never mutated afterwards; any number of readers may share a Catalog value
// without synchronization.
package catalog

import (
	"bytes"
	"strings"

	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// Entry represents one documented design pattern.
type Entry struct {
	// Name is the pattern display name, unique within its category.
	Name string `json:"name"`

	// Slug is the sanitized stable identifier derived from the name.
	Slug string `json:"slug"`

	// Category classifies the pattern (behavioral, creational).
	Category pattern.CategoryType `json:"category"`

	// Definition is the one-paragraph definition text.
	Definition string `json:"definition"`

	// Explanation is the rationale text; paragraphs joined by blank lines.
	Explanation string `json:"explanation"`

	// Example is the verbatim example source text, fences stripped.
	Example string `json:"example"`

	// ExampleLang is the fence info string of the example ("go" etc.).
	ExampleLang string `json:"example_lang,omitempty"`

	// SourceDoc is the ID of the document this entry was parsed from.
	SourceDoc string `json:"source_doc,omitempty"`

	// Index is the position within the catalog in document order.
	Index int `json:"index"`
}

// Key returns the lookup key for the entry (lowercased name).
func (e Entry) Key() string {
	return strings.ToLower(strings.TrimSpace(e.Name))
}

// EqualContent reports whether two entries carry the same catalog content.
// Provenance fields (SourceDoc, Index) are excluded so that a rendered and
// re-parsed entry compares equal to its original.
func (e Entry) EqualContent(other Entry) bool {
	return e.Name == other.Name &&
		e.Category == other.Category &&
		e.Definition == other.Definition &&
		e.Explanation == other.Explanation &&
		e.Example == other.Example &&
		e.ExampleLang == other.ExampleLang
}

// Slugify converts a pattern name to its stable slug form.
// "Chain of Responsibility" becomes "chain-of-responsibility".
func Slugify(name string) string {
	var buf bytes.Buffer
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z':
			buf.WriteRune(r)
		case r >= '0' && r <= '9':
			buf.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			buf.WriteRune('-')
		}
	}
	return buf.String()
}
