package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/document/parser"
)

const (
	// eventChannelBuffer is the size of the reload event channel.
	eventChannelBuffer = 64
)

// WatchConfig configures catalog document watching.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before reloading.
	DebounceDelay string `yaml:"debounce_delay"`

	// FileExtensions lists file extensions to watch (e.g., [".md", ".json"]).
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names to skip (e.g., [".git", "node_modules"]).
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:        false,
		DebounceDelay:  "500ms",
		FileExtensions: []string{".md", ".json"},
		ExcludeDirs:    []string{".git", "node_modules", "vendor"},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// ReloadEvent reports one catalog rebuild attempt.
type ReloadEvent struct {
	// Path is the document change that triggered the rebuild.
	Path string

	// Err is non-nil when the rebuild failed; the previous catalog
	// value stays current.
	Err error
}

// Watcher watches catalog document directories and rebuilds the catalog
// on change. The catalog is never mutated: each rebuild produces a fresh
// value which is swapped in atomically, so readers holding the previous
// value are unaffected.
type Watcher struct {
	opts    Options
	config  WatchConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	extensions map[string]bool
	excludes   map[string]bool

	// Debouncing: collect changes before reloading
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	current atomic.Pointer[catalog.Catalog]
	events  chan ReloadEvent

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher and performs the initial load.
func NewWatcher(opts Options, config WatchConfig) (*Watcher, error) {
	c, err := Load(opts)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extensions := make(map[string]bool)
	exts := config.FileExtensions
	if len(exts) == 0 {
		exts = DefaultWatchConfig().FileExtensions
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}

	excludes := make(map[string]bool)
	dirs := config.ExcludeDirs
	if len(dirs) == 0 {
		dirs = DefaultWatchConfig().ExcludeDirs
	}
	for _, dir := range dirs {
		excludes[dir] = true
	}

	w := &Watcher{
		opts:       opts,
		config:     config,
		watcher:    fsw,
		logger:     opts.logger(),
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan ReloadEvent, eventChannelBuffer),
	}
	w.current.Store(c)

	return w, nil
}

// Catalog returns the current catalog value.
func (w *Watcher) Catalog() *catalog.Catalog {
	return w.current.Load()
}

// Events returns the channel of reload events.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Start begins watching the document roots for changes.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range WatchRoots(w.opts.Paths) {
		if err := w.addWatchesRecursive(root); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Catalog watcher started",
		"roots", WatchRoots(w.opts.Paths),
		"debounce", w.config.GetDebounceDelay())

	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// addWatchesRecursive adds watches to all directories under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".") {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		// But handle directory creation (for new watches)
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected",
		"path", path,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if w.excludes[base] || strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending rebuilds the catalog when accumulated changes are real.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make(map[string]fsnotify.Op, len(w.pending))
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	changed := ""
	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			w.hashMu.Lock()
			delete(w.hashes, path)
			w.hashMu.Unlock()
			changed = path
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				changed = path
			} else {
				w.logger.Warn("Failed to read changed document",
					"path", path,
					"error", err)
			}
			continue
		}

		newHash := parser.ContentHash(content)

		w.hashMu.RLock()
		oldHash, hadHash := w.hashes[path]
		w.hashMu.RUnlock()
		if hadHash && oldHash == newHash {
			// Content unchanged, skip
			continue
		}

		w.hashMu.Lock()
		w.hashes[path] = newHash
		w.hashMu.Unlock()
		changed = path
	}

	if changed == "" {
		return
	}

	w.reload(changed)
}

// reload rebuilds the catalog and swaps it in on success.
func (w *Watcher) reload(path string) {
	c, err := Load(w.opts)
	if err != nil {
		w.logger.Error("Catalog reload failed; keeping previous catalog",
			"trigger", path,
			"error", err)
		w.sendEvent(ReloadEvent{Path: path, Err: err})
		return
	}

	w.current.Store(c)
	w.logger.Info("Catalog reloaded",
		"trigger", path,
		"entries", c.Len())
	w.sendEvent(ReloadEvent{Path: path})
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event ReloadEvent) {
	select {
	case w.events <- event:
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}
