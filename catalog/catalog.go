package catalog

import (
	"fmt"
	"strings"

	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// Catalog is an immutable, ordered collection of pattern entries with
// name and category indexes. Construct with New; the zero value is an
// empty catalog.
type Catalog struct {
	entries    []Entry
	byKey      map[string][]Entry
	byCategory map[pattern.CategoryType][]Entry
	catOrder   []pattern.CategoryType
}

// New builds a catalog from entries in document order, validating the
// catalog invariants:
//
//   - Name, Definition, Explanation, and Example are non-empty.
//   - Category is a known vocabulary value.
//   - Name is unique within its category.
//
// Entry Index and Slug fields are assigned during construction; callers
// need not populate them.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries:    make([]Entry, 0, len(entries)),
		byKey:      make(map[string][]Entry, len(entries)),
		byCategory: make(map[pattern.CategoryType][]Entry),
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("entry %d: empty name: %w", i, ErrIncompleteEntry)
		}
		if strings.TrimSpace(e.Definition) == "" {
			return nil, fmt.Errorf("entry %q: empty definition: %w", e.Name, ErrIncompleteEntry)
		}
		if strings.TrimSpace(e.Explanation) == "" {
			return nil, fmt.Errorf("entry %q: empty explanation: %w", e.Name, ErrIncompleteEntry)
		}
		if strings.TrimSpace(e.Example) == "" {
			return nil, fmt.Errorf("entry %q: empty example: %w", e.Name, ErrIncompleteEntry)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("entry %q: category %q: %w", e.Name, e.Category, ErrUnknownCategory)
		}

		catKey := string(e.Category) + ":" + e.Key()
		if seen[catKey] {
			return nil, fmt.Errorf("entry %q in %s: %w", e.Name, e.Category, ErrDuplicateName)
		}
		seen[catKey] = true

		e.Index = len(c.entries)
		e.Slug = Slugify(e.Name)
		c.entries = append(c.entries, e)

		c.byKey[e.Key()] = append(c.byKey[e.Key()], e)
		if e.Slug != e.Key() {
			c.byKey[e.Slug] = append(c.byKey[e.Slug], e)
		}
		if _, ok := c.byCategory[e.Category]; !ok {
			c.catOrder = append(c.catOrder, e.Category)
		}
		c.byCategory[e.Category] = append(c.byCategory[e.Category], e)
	}

	return c, nil
}

// MustNew builds a catalog, panicking on invalid entries.
// Use for known-good embedded content.
func MustNew(entries []Entry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the entry matching name. Matching is case-insensitive and
// accepts either the display name or the slug. When the same name exists in
// more than one category, the entry earliest in document order is returned;
// use LookupIn to disambiguate. A miss returns (Entry{}, false), never an
// error.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	matches := c.byKey[lookupKey(name)]
	if len(matches) == 0 {
		return Entry{}, false
	}
	return matches[0], true
}

// LookupIn returns the entry matching name within a category.
func (c *Catalog) LookupIn(category pattern.CategoryType, name string) (Entry, bool) {
	for _, e := range c.byKey[lookupKey(name)] {
		if e.Category == category {
			return e, true
		}
	}
	return Entry{}, false
}

// ByCategory returns all entries in a category, preserving document order.
// An unknown or empty category yields an empty slice.
func (c *Catalog) ByCategory(category pattern.CategoryType) []Entry {
	entries := c.byCategory[category]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Entries returns all entries in document order as a defensive copy.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Categories returns the categories present, in order of first appearance.
func (c *Catalog) Categories() []pattern.CategoryType {
	out := make([]pattern.CategoryType, len(c.catOrder))
	copy(out, c.catOrder)
	return out
}

// EqualEntries reports whether two entry sequences carry the same content
// in the same order. Used by the round-trip check.
func EqualEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].EqualContent(b[i]) {
			return false
		}
	}
	return true
}

func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
