// Package parser provides catalog document parsing.
package parser

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/document"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// MarkdownParser parses markdown catalog documents with optional YAML
// frontmatter. The body format is heading-delimited: H1 headings name
// category sections, each H2 heading opens a pattern entry consisting of a
// definition paragraph, one or more explanation paragraphs, and exactly one
// fenced code block holding the example.
type MarkdownParser struct{}

// NewMarkdownParser creates a new markdown parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Parse parses a markdown catalog document.
func (p *MarkdownParser) Parse(filename string, content []byte) (*document.Document, error) {
	doc := &document.Document{
		ID:       generateID(filename, content),
		Filename: filepath.Base(filename),
		Content:  string(content),
	}

	str := string(content)
	if strings.HasPrefix(str, "---\n") || strings.HasPrefix(str, "---\r\n") {
		frontmatter, body, err := extractFrontmatter(str)
		if err != nil {
			// If frontmatter parsing fails, treat entire content as body
			doc.Body = str
		} else {
			doc.Frontmatter = frontmatter
			doc.Body = body
		}
	} else {
		doc.Body = str
	}

	entries, err := scanEntries(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Filename, err)
	}
	doc.Entries = entries

	return doc, nil
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *MarkdownParser) CanParse(mimeType string) bool {
	switch mimeType {
	case "text/markdown", "text/x-markdown", "text/plain":
		return true
	default:
		return false
	}
}

// MimeType returns the primary MIME type for this parser.
func (p *MarkdownParser) MimeType() string {
	return "text/markdown"
}

// entryBuilder accumulates one pattern entry while scanning the body.
type entryBuilder struct {
	name       string
	category   pattern.CategoryType
	paragraphs []string
	paraLines  []string
	example    []string
	lang       string
	fence      string
	inFence    bool
	hasExample bool
}

// scanEntries extracts pattern entries from a document body.
// The current category starts from frontmatter and is switched by H1
// category headings; prose before the first H2 is preamble and ignored.
func scanEntries(doc *document.Document) ([]catalog.Entry, error) {
	category, _ := doc.Category()

	var entries []catalog.Entry
	var current *entryBuilder

	flush := func() error {
		if current == nil {
			return nil
		}
		entry, err := current.finish()
		if err != nil {
			return err
		}
		entry.SourceDoc = doc.ID
		entries = append(entries, entry)
		current = nil
		return nil
	}

	for _, line := range strings.Split(doc.Body, "\n") {
		line = strings.TrimSuffix(line, "\r")

		// Inside a fence everything is verbatim example text.
		if current != nil && current.inFence {
			if strings.TrimSpace(line) == current.fence {
				current.inFence = false
				current.hasExample = true
				continue
			}
			current.example = append(current.example, line)
			continue
		}

		if marker, lang, ok := parseFence(line); ok {
			if current == nil {
				return nil, fmt.Errorf("code fence outside of a pattern entry")
			}
			if current.hasExample {
				return nil, fmt.Errorf("entry %q: more than one example", current.name)
			}
			current.closeParagraph()
			current.fence = marker
			current.lang = lang
			current.inFence = true
			continue
		}

		if isHeading(line) {
			level, text := parseHeading(line)
			switch {
			case level == 1:
				if err := flush(); err != nil {
					return nil, err
				}
				if cat, ok := pattern.ParseCategoryTitle(text); ok {
					category = cat
				}
			case level == 2:
				if err := flush(); err != nil {
					return nil, err
				}
				if !category.Valid() {
					return nil, fmt.Errorf("entry %q: no category in scope", text)
				}
				current = &entryBuilder{name: text, category: category}
			default:
				name := "preamble"
				if current != nil {
					name = current.name
				}
				return nil, fmt.Errorf("entry %q: unexpected heading %q", name, text)
			}
			continue
		}

		// Preamble prose before the first entry.
		if current == nil {
			continue
		}

		if strings.TrimSpace(line) == "" {
			current.closeParagraph()
			continue
		}

		if current.hasExample {
			return nil, fmt.Errorf("entry %q: content after example", current.name)
		}
		current.paraLines = append(current.paraLines, line)
	}

	if current != nil && current.inFence {
		return nil, fmt.Errorf("entry %q: unclosed code fence", current.name)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return entries, nil
}

// closeParagraph moves buffered lines into a completed paragraph.
func (b *entryBuilder) closeParagraph() {
	if len(b.paraLines) == 0 {
		return
	}
	b.paragraphs = append(b.paragraphs, strings.Join(b.paraLines, "\n"))
	b.paraLines = nil
}

// finish validates the accumulated entry and converts it.
func (b *entryBuilder) finish() (catalog.Entry, error) {
	b.closeParagraph()

	if !b.hasExample {
		return catalog.Entry{}, fmt.Errorf("entry %q: missing example", b.name)
	}
	if len(b.paragraphs) == 0 {
		return catalog.Entry{}, fmt.Errorf("entry %q: missing definition", b.name)
	}
	if len(b.paragraphs) == 1 {
		return catalog.Entry{}, fmt.Errorf("entry %q: missing explanation", b.name)
	}

	return catalog.Entry{
		Name:        b.name,
		Category:    b.category,
		Definition:  b.paragraphs[0],
		Explanation: strings.Join(b.paragraphs[1:], "\n\n"),
		Example:     strings.Join(b.example, "\n"),
		ExampleLang: b.lang,
	}, nil
}

// parseFence checks whether a line opens a code fence and returns the
// fence marker and info string.
func parseFence(line string) (marker, lang string, ok bool) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```", strings.TrimSpace(strings.TrimPrefix(trimmed, "```")), true
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~", strings.TrimSpace(strings.TrimPrefix(trimmed, "~~~")), true
	default:
		return "", "", false
	}
}

// isHeading checks if a line is a markdown heading.
func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// parseHeading extracts the level and text from a heading line.
func parseHeading(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for _, ch := range trimmed {
		if ch == '#' {
			level++
		} else {
			break
		}
	}
	if level > 6 {
		level = 6
	}

	text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	return level, text
}

// extractFrontmatter parses YAML frontmatter from markdown content.
// Returns the parsed frontmatter map, the remaining body, and any error.
func extractFrontmatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	// Skip the opening delimiter
	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	// Find the closing delimiter
	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delimiter)
	}
	if closeIdx == -1 {
		return nil, content, fmt.Errorf("no closing frontmatter delimiter")
	}

	yamlContent := content[start : start+closeIdx]

	// Find where the body starts (after closing delimiter and newline)
	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}

	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &frontmatter); err != nil {
		return nil, content, fmt.Errorf("parse YAML frontmatter: %w", err)
	}

	return frontmatter, body, nil
}

// generateID creates a stable document ID from filename and content hash.
func generateID(filename string, content []byte) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = sanitizeID(name)

	hash := sha256.Sum256(content)
	shortHash := hex.EncodeToString(hash[:])[:12]

	return fmt.Sprintf("doc.%s.%s", name, shortHash)
}

// sanitizeID makes a string safe for use as a document ID.
func sanitizeID(s string) string {
	var buf bytes.Buffer
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			buf.WriteRune(r)
		case r >= '0' && r <= '9':
			buf.WriteRune(r)
		case r == '-' || r == '_':
			buf.WriteRune('-')
		case r == ' ':
			buf.WriteRune('-')
		}
	}
	return buf.String()
}

// ContentHash computes a SHA256 hash of the content.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
