// Package document provides the catalog document model.
//
// A Document is one catalog source file (markdown or JSON) parsed into
// frontmatter, body, and the ordered pattern entries it declares. Parsing
// lives in the document/parser subpackage.
package document
