package render

import (
	"encoding/json"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// JSONWriter writes a catalog as a JSON catalog document. Entry objects
// are keyed by the vocabulary predicates so the output stays
// self-describing.
type JSONWriter struct {
	title   string
	entries []map[string]any
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// SetTitle sets the document title.
func (w *JSONWriter) SetTitle(title string) {
	w.title = title
}

// AddEntry appends an entry to the document.
func (w *JSONWriter) AddEntry(entry catalog.Entry) {
	fields := map[string]any{
		pattern.PredName:        entry.Name,
		pattern.PredSlug:        entry.Slug,
		pattern.PredCategory:    string(entry.Category),
		pattern.PredDefinition:  entry.Definition,
		pattern.PredExplanation: entry.Explanation,
		pattern.PredExample:     entry.Example,
	}
	if entry.ExampleLang != "" {
		fields[pattern.PredExampleLang] = entry.ExampleLang
	}
	w.entries = append(w.entries, fields)
}

// WriteCatalog appends all catalog entries in document order.
func (w *JSONWriter) WriteCatalog(c *catalog.Catalog, title string) {
	w.SetTitle(title)
	for _, entry := range c.Entries() {
		w.AddEntry(entry)
	}
}

// String returns the indented JSON output.
func (w *JSONWriter) String() string {
	doc := map[string]any{
		"@type":                pattern.PredDocType,
		pattern.PredDocEntries: w.entries,
	}
	if w.entries == nil {
		doc[pattern.PredDocEntries] = []map[string]any{}
	}
	if w.title != "" {
		doc[pattern.PredDocTitle] = w.title
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
