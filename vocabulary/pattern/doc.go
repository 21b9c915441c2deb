// Package pattern provides the vocabulary for design pattern catalog entries.
//
// It defines the category enums, the canonical cross-references between
// patterns, and the predicate constants naming the fields of the external
// document formats.
package pattern
