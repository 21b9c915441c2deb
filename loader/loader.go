// Package loader builds catalog values from catalog documents.
//
// The built-in documents are embedded; extra documents are discovered from
// configured paths and glob patterns. Every load produces a fresh,
// immutable catalog.
package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/document/parser"
)

//go:embed docs/*.md
var builtinDocs embed.FS

// Options configures a catalog load.
type Options struct {
	// Paths are extra document locations: files, directories, or glob
	// patterns (** supported).
	Paths []string

	// Strict fails the load on a malformed extra document instead of
	// skipping it with a warning. Built-in documents are always strict.
	Strict bool

	// Registry resolves document parsers. Nil uses parser.DefaultRegistry.
	Registry *parser.Registry

	// Logger receives skip warnings. Nil uses slog.Default.
	Logger *slog.Logger
}

func (o Options) registry() *parser.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return parser.DefaultRegistry
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

var (
	builtinOnce    sync.Once
	builtinCatalog *catalog.Catalog
)

// Builtin returns the catalog built from the embedded documents alone.
// The embedded content is validated at first use; invalid embedded
// documents are a programming error and panic.
func Builtin() *catalog.Catalog {
	builtinOnce.Do(func() {
		entries, err := builtinEntries(parser.DefaultRegistry)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog documents invalid: %v", err))
		}
		builtinCatalog = catalog.MustNew(entries)
	})
	return builtinCatalog
}

// Load builds a catalog from the embedded documents plus any extra
// documents named by opts.Paths. Extra documents may add entries but never
// shadow: a duplicate name within a category fails the load.
func Load(opts Options) (*catalog.Catalog, error) {
	reg := opts.registry()

	entries, err := builtinEntries(reg)
	if err != nil {
		return nil, err
	}

	files, err := ResolveDocs(opts.Paths, reg)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("read document %s: %w", file, err)
			}
			opts.logger().Warn("Skipping unreadable document", "path", file, "error", err)
			continue
		}

		doc, err := reg.Parse(file, content)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("parse document: %w", err)
			}
			opts.logger().Warn("Skipping malformed document", "path", file, "error", err)
			continue
		}

		entries = append(entries, doc.Entries...)
	}

	c, err := catalog.New(entries)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

// builtinEntries parses the embedded documents in lexical order
// (behavioral before creational, matching the canonical catalog order).
func builtinEntries(reg *parser.Registry) ([]catalog.Entry, error) {
	var entries []catalog.Entry

	err := fs.WalkDir(builtinDocs, "docs", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := builtinDocs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded document %s: %w", path, err)
		}
		doc, err := reg.Parse(path, content)
		if err != nil {
			return fmt.Errorf("parse embedded document: %w", err)
		}
		entries = append(entries, doc.Entries...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ResolveDocs expands paths and glob patterns to concrete document files.
// Directories contribute every parseable file they contain (one level);
// glob patterns support ** via doublestar. The result is deduplicated and
// sorted for deterministic load order.
func ResolveDocs(patterns []string, reg *parser.Registry) ([]string, error) {
	if reg == nil {
		reg = parser.DefaultRegistry
	}

	var resolved []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] && reg.GetByExtension(path) != nil {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			absPath, err := filepath.Abs(pattern)
			if err != nil {
				return nil, fmt.Errorf("resolve path %q: %w", pattern, err)
			}

			info, err := os.Stat(absPath)
			if err != nil {
				return nil, fmt.Errorf("resolve path %q: %w", pattern, err)
			}

			if !info.IsDir() {
				add(absPath)
				continue
			}

			dirEntries, err := os.ReadDir(absPath)
			if err != nil {
				return nil, fmt.Errorf("read directory %q: %w", pattern, err)
			}
			for _, de := range dirEntries {
				if !de.IsDir() {
					add(filepath.Join(absPath, de.Name()))
				}
			}
			continue
		}

		absPattern, err := makeAbsolutePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		// Use doublestar for ** support
		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue // Skip paths that can't be stat'd
			}
			if !info.IsDir() {
				add(match)
			}
		}
	}

	sort.Strings(resolved)
	return resolved, nil
}

// WatchRoots returns the directories to watch for the given patterns:
// the non-glob prefix of each pattern, or the path itself for plain
// files and directories.
func WatchRoots(patterns []string) []string {
	var roots []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		root := pattern
		if containsGlob(pattern) {
			root, _ = doublestar.SplitPattern(filepath.ToSlash(pattern))
		} else if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
			root = filepath.Dir(pattern)
		}

		abs, err := filepath.Abs(filepath.FromSlash(root))
		if err != nil {
			continue
		}
		if !seen[abs] {
			seen[abs] = true
			roots = append(roots, abs)
		}
	}

	return roots
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// makeAbsolutePattern converts a relative pattern to absolute while
// preserving glob characters.
func makeAbsolutePattern(pattern string) (string, error) {
	base, glob := doublestar.SplitPattern(filepath.ToSlash(pattern))

	absBase, err := filepath.Abs(filepath.FromSlash(base))
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(absBase) + "/" + glob, nil
}
