package loader

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

var behavioralNames = []string{
	"Chain of Responsibility",
	"Command",
	"Interpreter",
	"Iterator",
	"Mediator",
	"Memento",
	"Observer",
	"State",
	"Strategy",
	"Template Method",
	"Visitor",
}

var creationalNames = []string{
	"Abstract Factory",
	"Builder",
	"Factory Method",
	"Prototype",
	"Singleton",
	"Lazy Initialization",
}

func TestBuiltin_CanonicalCatalog(t *testing.T) {
	c := Builtin()

	assert.Equal(t, len(behavioralNames)+len(creationalNames), c.Len())

	behavioral := c.ByCategory(pattern.CategoryBehavioral)
	require.Len(t, behavioral, len(behavioralNames))
	for i, e := range behavioral {
		assert.Equal(t, behavioralNames[i], e.Name, "behavioral position %d", i)
	}

	creational := c.ByCategory(pattern.CategoryCreational)
	require.Len(t, creational, len(creationalNames))
	for i, e := range creational {
		assert.Equal(t, creationalNames[i], e.Name, "creational position %d", i)
	}
}

func TestBuiltin_EntriesComplete(t *testing.T) {
	for _, e := range Builtin().Entries() {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Definition, "entry %q", e.Name)
		assert.NotEmpty(t, e.Explanation, "entry %q", e.Name)
		assert.NotEmpty(t, e.Example, "entry %q", e.Name)
		assert.Equal(t, "go", e.ExampleLang, "entry %q", e.Name)
		assert.True(t, e.Category.Valid(), "entry %q", e.Name)
	}
}

func TestBuiltin_LookupSingleton(t *testing.T) {
	matches := 0
	for _, e := range Builtin().Entries() {
		if e.Name == "Singleton" {
			matches++
		}
	}
	assert.Equal(t, 1, matches)

	e, ok := Builtin().Lookup("Singleton")
	require.True(t, ok)
	assert.Equal(t, pattern.CategoryCreational, e.Category)
}

func TestBuiltin_LookupMiss(t *testing.T) {
	_, ok := Builtin().Lookup("NonexistentPattern")
	assert.False(t, ok)
}

func TestLoad_ExtraDocuments(t *testing.T) {
	dir := t.TempDir()
	extra := `---
category: behavioral
---
## Null Object

Provides a do-nothing object in place of a nil reference.

Callers invoke behavior unconditionally instead of checking for absence.

` + "```go" + `
type NullLogger struct{}

func (NullLogger) Log(string) {}
` + "```" + `
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.md"), []byte(extra), 0644))

	c, err := Load(Options{Paths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, Builtin().Len()+1, c.Len())

	e, ok := c.Lookup("Null Object")
	require.True(t, ok)
	assert.Equal(t, pattern.CategoryBehavioral, e.Category)

	// Extra entries come after the builtin ones.
	behavioral := c.ByCategory(pattern.CategoryBehavioral)
	assert.Equal(t, "Null Object", behavioral[len(behavioral)-1].Name)
}

func TestLoad_DuplicateEntryFails(t *testing.T) {
	dir := t.TempDir()
	dup := `---
category: creational
---
## Singleton

A second singleton definition.

This shadows the builtin entry and must fail the load.

` + "```go" + `
var again = true
` + "```" + `
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.md"), []byte(dup), 0644))

	_, err := Load(Options{Paths: []string{dir}})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateName)
}

func TestLoad_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	bad := "## Broken\n\nOnly a definition, nothing else.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte(bad), 0644))

	// Lenient load skips the document.
	c, err := Load(Options{
		Paths:  []string{dir},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), c.Len())

	// Strict load fails.
	_, err = Load(Options{Paths: []string{dir}, Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse document")
}

func TestResolveDocs_GlobAndDedupe(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.pdf"), []byte("x"), 0644))

	files, err := ResolveDocs([]string{
		filepath.Join(dir, "**", "*.md"),
		filepath.Join(dir, "a.md"), // duplicate of the glob match
		dir,                        // directory form, also duplicates a.md
	}, nil)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), files[0])
	assert.Equal(t, filepath.Join(sub, "b.md"), files[1])
}

func TestResolveDocs_MissingPath(t *testing.T) {
	_, err := ResolveDocs([]string{"/does/not/exist"}, nil)
	assert.Error(t, err)
}

func TestWatchRoots(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	roots := WatchRoots([]string{
		filepath.Join(dir, "**", "*.md"),
		file,
		dir,
	})

	require.Len(t, roots, 1)
	assert.Equal(t, dir, roots[0])
}
