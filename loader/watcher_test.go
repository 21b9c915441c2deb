package loader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfig_GetDebounceDelay(t *testing.T) {
	cfg := DefaultWatchConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.GetDebounceDelay())

	cfg.DebounceDelay = "50ms"
	assert.Equal(t, 50*time.Millisecond, cfg.GetDebounceDelay())

	cfg.DebounceDelay = "bogus"
	assert.Equal(t, 500*time.Millisecond, cfg.GetDebounceDelay())
}

func TestNewWatcher_InitialLoad(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(Options{Paths: []string{dir}}, DefaultWatchConfig())
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NotNil(t, w.Catalog())
	assert.Equal(t, Builtin().Len(), w.Catalog().Len())
	assert.Zero(t, w.DroppedEvents())
}

func TestWatcher_ReloadSwapsCatalog(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(Options{
		Paths:  []string{dir},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, DefaultWatchConfig())
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	before := w.Catalog()

	extra := `---
category: behavioral
---
## Null Object

Provides a do-nothing object in place of a nil reference.

Callers invoke behavior unconditionally instead of checking for absence.

` + "```go" + `
type NullLogger struct{}
` + "```" + `
`
	path := filepath.Join(dir, "extra.md")
	require.NoError(t, os.WriteFile(path, []byte(extra), 0644))

	w.reload(path)

	after := w.Catalog()
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Len()+1, after.Len())

	// The previous catalog value is untouched.
	_, ok := before.Lookup("Null Object")
	assert.False(t, ok)
	_, ok = after.Lookup("Null Object")
	assert.True(t, ok)

	select {
	case ev := <-w.Events():
		assert.Equal(t, path, ev.Path)
		assert.NoError(t, ev.Err)
	default:
		t.Fatal("expected a reload event")
	}
}

func TestWatcher_FailedReloadKeepsCatalog(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(Options{
		Paths:  []string{dir},
		Strict: true,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, DefaultWatchConfig())
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	before := w.Catalog()

	path := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("## Broken\n\nNo example.\n"), 0644))

	w.reload(path)

	assert.Same(t, before, w.Catalog())

	select {
	case ev := <-w.Events():
		assert.Equal(t, path, ev.Path)
		assert.Error(t, ev.Err)
	default:
		t.Fatal("expected a reload event")
	}
}

func TestWatcher_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultWatchConfig()
	cfg.DebounceDelay = "20ms"

	w, err := NewWatcher(Options{
		Paths:  []string{dir},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	extra := `---
category: creational
---
## Object Pool

Reuses a bounded set of initialized objects instead of allocating on demand.

Borrowed objects return to the pool when released.

` + "```go" + `
var pool = sync.Pool{New: func() any { return new(bytes.Buffer) }}
` + "```" + `
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pool.md"), []byte(extra), 0644))

	select {
	case ev := <-w.Events():
		require.NoError(t, ev.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}

	_, ok := w.Catalog().Lookup("Object Pool")
	assert.True(t, ok)
}
