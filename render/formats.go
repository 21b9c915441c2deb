// Package render serializes a catalog back to its document formats.
//
// Rendered output is re-parseable: rendering a catalog and parsing the
// result yields the same ordered entry sequence.
package render

import (
	"fmt"
	"strings"
)

// Format identifies an output format.
type Format string

const (
	// FormatMarkdown is the markdown catalog document format.
	FormatMarkdown Format = "markdown"

	// FormatJSON is the JSON catalog document format.
	FormatJSON Format = "json"
)

// FormatInfo provides metadata about an output format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatMarkdown: {
		Name:        FormatMarkdown,
		MIMEType:    "text/markdown",
		Extension:   ".md",
		Description: "Markdown catalog document (headings, prose, fenced examples)",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON catalog document keyed by vocabulary predicates",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat parses a format name. Matching is case-insensitive and
// accepts the common "md" shorthand.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %q", s)
	}
}
