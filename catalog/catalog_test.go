package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/patternbook/vocabulary/pattern"
)

func validEntry(name string, cat pattern.CategoryType) Entry {
	return Entry{
		Name:        name,
		Category:    cat,
		Definition:  "Defines " + name + ".",
		Explanation: "Explains " + name + ".",
		Example:     "package main",
		ExampleLang: "go",
	}
}

func TestNew_AssignsIndexAndSlug(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Chain of Responsibility", pattern.CategoryBehavioral),
		validEntry("Singleton", pattern.CategoryCreational),
	})
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, "chain-of-responsibility", entries[0].Slug)
	assert.Equal(t, 1, entries[1].Index)
	assert.Equal(t, "singleton", entries[1].Slug)
}

func TestNew_RejectsIncompleteEntry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
	}{
		{"empty name", func(e *Entry) { e.Name = "" }},
		{"empty definition", func(e *Entry) { e.Definition = "  " }},
		{"empty explanation", func(e *Entry) { e.Explanation = "" }},
		{"empty example", func(e *Entry) { e.Example = "\n" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry("Observer", pattern.CategoryBehavioral)
			tt.mutate(&e)

			_, err := New([]Entry{e})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteEntry)
		})
	}
}

func TestNew_RejectsUnknownCategory(t *testing.T) {
	e := validEntry("Observer", "structural")

	_, err := New([]Entry{e})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestNew_RejectsDuplicateNameWithinCategory(t *testing.T) {
	_, err := New([]Entry{
		validEntry("Observer", pattern.CategoryBehavioral),
		validEntry("Observer", pattern.CategoryBehavioral),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestNew_AllowsSameNameAcrossCategories(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Factory", pattern.CategoryBehavioral),
		validEntry("Factory", pattern.CategoryCreational),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	// Lookup returns the first in document order.
	e, ok := c.Lookup("Factory")
	require.True(t, ok)
	assert.Equal(t, pattern.CategoryBehavioral, e.Category)

	// LookupIn disambiguates.
	e, ok = c.LookupIn(pattern.CategoryCreational, "Factory")
	require.True(t, ok)
	assert.Equal(t, pattern.CategoryCreational, e.Category)
}

func TestLookup_CaseInsensitiveAndBySlug(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Template Method", pattern.CategoryBehavioral),
	})
	require.NoError(t, err)

	for _, query := range []string{"Template Method", "template method", "TEMPLATE METHOD", "template-method"} {
		e, ok := c.Lookup(query)
		require.True(t, ok, "query %q", query)
		assert.Equal(t, "Template Method", e.Name)
	}
}

func TestLookup_MissIsNotAnError(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Singleton", pattern.CategoryCreational),
	})
	require.NoError(t, err)

	e, ok := c.Lookup("NonexistentPattern")
	assert.False(t, ok)
	assert.Zero(t, e)
}

func TestByCategory_PreservesDocumentOrder(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Observer", pattern.CategoryBehavioral),
		validEntry("Singleton", pattern.CategoryCreational),
		validEntry("State", pattern.CategoryBehavioral),
		validEntry("Builder", pattern.CategoryCreational),
	})
	require.NoError(t, err)

	behavioral := c.ByCategory(pattern.CategoryBehavioral)
	require.Len(t, behavioral, 2)
	assert.Equal(t, "Observer", behavioral[0].Name)
	assert.Equal(t, "State", behavioral[1].Name)

	assert.Empty(t, c.ByCategory("structural"))
	assert.Equal(t, []pattern.CategoryType{pattern.CategoryBehavioral, pattern.CategoryCreational}, c.Categories())
}

func TestEntries_ReturnsDefensiveCopy(t *testing.T) {
	c, err := New([]Entry{
		validEntry("Observer", pattern.CategoryBehavioral),
	})
	require.NoError(t, err)

	entries := c.Entries()
	entries[0].Name = "Mutated"

	e, ok := c.Lookup("Observer")
	require.True(t, ok)
	assert.Equal(t, "Observer", e.Name)
}

func TestEqualEntries_IgnoresProvenance(t *testing.T) {
	a := validEntry("Observer", pattern.CategoryBehavioral)
	b := a
	b.SourceDoc = "doc.other.abc123"
	b.Index = 7

	assert.True(t, EqualEntries([]Entry{a}, []Entry{b}))

	b.Definition = "Changed."
	assert.False(t, EqualEntries([]Entry{a}, []Entry{b}))
	assert.False(t, EqualEntries([]Entry{a}, nil))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "chain-of-responsibility", Slugify("Chain of Responsibility"))
	assert.Equal(t, "lazy-initialization", Slugify("Lazy Initialization"))
	assert.Equal(t, "singleton", Slugify("  Singleton  "))
}
