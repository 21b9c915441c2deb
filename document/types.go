package document

import (
	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// Document represents a parsed catalog document.
type Document struct {
	// ID is the document identifier, derived from filename and content hash.
	ID string `json:"id"`

	// Filename is the original filename.
	Filename string `json:"filename"`

	// Content is the raw document content.
	Content string `json:"content"`

	// Frontmatter contains parsed YAML frontmatter if present.
	Frontmatter map[string]any `json:"frontmatter,omitempty"`

	// Body is the content without frontmatter.
	Body string `json:"body"`

	// Entries are the pattern entries declared by the document, in
	// document order.
	Entries []catalog.Entry `json:"entries"`
}

// HasFrontmatter returns true if the document has parsed frontmatter.
func (d *Document) HasFrontmatter() bool {
	return len(d.Frontmatter) > 0
}

// Title returns the frontmatter title, or "" if absent.
func (d *Document) Title() string {
	if s, ok := d.Frontmatter["title"].(string); ok {
		return s
	}
	return ""
}

// Category returns the frontmatter category if present and valid.
// It seeds the current category for entry scanning; H1 category headings
// in the body override it.
func (d *Document) Category() (pattern.CategoryType, bool) {
	s, ok := d.Frontmatter["category"].(string)
	if !ok {
		return "", false
	}
	return pattern.ParseCategory(s)
}
