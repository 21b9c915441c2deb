package render

import (
	"fmt"

	"github.com/c360studio/patternbook/catalog"
)

// DefaultTitle is used when no document title is configured.
const DefaultTitle = "Design Pattern Catalog"

// Render serializes a catalog in the given format.
func Render(c *catalog.Catalog, format Format, title string) (string, error) {
	switch format {
	case FormatMarkdown:
		w := NewMarkdownWriter()
		w.WriteCatalog(c, title)
		return w.String(), nil
	case FormatJSON:
		w := NewJSONWriter()
		w.WriteCatalog(c, title)
		return w.String(), nil
	default:
		return "", fmt.Errorf("unknown format: %q", format)
	}
}
