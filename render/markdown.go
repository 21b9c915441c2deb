package render

import (
	"strings"

	"github.com/c360studio/patternbook/catalog"
)

// MarkdownWriter writes a catalog as a markdown catalog document.
type MarkdownWriter struct {
	sb strings.Builder
}

// NewMarkdownWriter creates a new markdown writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// WriteCatalog writes all entries grouped under category title headings,
// preserving document order within each category.
func (w *MarkdownWriter) WriteCatalog(c *catalog.Catalog, title string) {
	if title != "" {
		w.sb.WriteString("---\ntitle: ")
		w.sb.WriteString(title)
		w.sb.WriteString("\n---\n\n")
	}

	for _, category := range c.Categories() {
		w.sb.WriteString("# ")
		w.sb.WriteString(category.Title())
		w.sb.WriteString("\n\n")

		for _, entry := range c.ByCategory(category) {
			w.WriteEntry(entry)
		}
	}
}

// WriteEntry writes a single entry: heading, definition, explanation,
// fenced example.
func (w *MarkdownWriter) WriteEntry(entry catalog.Entry) {
	w.sb.WriteString("## ")
	w.sb.WriteString(entry.Name)
	w.sb.WriteString("\n\n")

	w.sb.WriteString(entry.Definition)
	w.sb.WriteString("\n\n")

	w.sb.WriteString(entry.Explanation)
	w.sb.WriteString("\n\n")

	// Switch fence markers when the example itself contains one.
	fence := "```"
	if strings.Contains(entry.Example, "```") {
		fence = "~~~"
	}

	w.sb.WriteString(fence)
	w.sb.WriteString(entry.ExampleLang)
	w.sb.WriteString("\n")
	w.sb.WriteString(entry.Example)
	w.sb.WriteString("\n")
	w.sb.WriteString(fence)
	w.sb.WriteString("\n\n")
}

// String returns the accumulated markdown output.
func (w *MarkdownWriter) String() string {
	return w.sb.String()
}
