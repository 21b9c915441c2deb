package parser

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/document"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// JSONParser parses JSON catalog documents as produced by the JSON
// renderer. Entries are objects keyed by the vocabulary predicates.
type JSONParser struct{}

// NewJSONParser creates a new JSON parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse parses a JSON catalog document.
func (p *JSONParser) Parse(filename string, content []byte) (*document.Document, error) {
	doc := &document.Document{
		ID:       generateID(filename, content),
		Filename: filepath.Base(filename),
		Content:  string(content),
		Body:     string(content),
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%s: parse JSON document: %w", doc.Filename, err)
	}

	if docType, _ := raw["@type"].(string); docType != pattern.PredDocType {
		return nil, fmt.Errorf("%s: not a pattern catalog document (@type %q)", doc.Filename, raw["@type"])
	}

	if title, ok := raw[pattern.PredDocTitle].(string); ok && title != "" {
		doc.Frontmatter = map[string]any{"title": title}
	}

	rawEntries, ok := raw[pattern.PredDocEntries].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: missing %s array", doc.Filename, pattern.PredDocEntries)
	}

	for i, rawEntry := range rawEntries {
		fields, ok := rawEntry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: entry %d is not an object", doc.Filename, i)
		}

		entry := catalog.Entry{
			Name:        stringField(fields, pattern.PredName),
			Definition:  stringField(fields, pattern.PredDefinition),
			Explanation: stringField(fields, pattern.PredExplanation),
			Example:     stringField(fields, pattern.PredExample),
			ExampleLang: stringField(fields, pattern.PredExampleLang),
			SourceDoc:   doc.ID,
		}

		cat, ok := pattern.ParseCategory(stringField(fields, pattern.PredCategory))
		if !ok {
			return nil, fmt.Errorf("%s: entry %d (%q): unknown category %q",
				doc.Filename, i, entry.Name, stringField(fields, pattern.PredCategory))
		}
		entry.Category = cat

		doc.Entries = append(doc.Entries, entry)
	}

	return doc, nil
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *JSONParser) CanParse(mimeType string) bool {
	return mimeType == "application/json"
}

// MimeType returns the primary MIME type for this parser.
func (p *JSONParser) MimeType() string {
	return "application/json"
}

// stringField extracts a string value from a decoded JSON object.
func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
