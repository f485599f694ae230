package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further changes before
// rebuilding.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Load returns the options for the next build. It runs once at start
	// and again before every rebuild, so configuration edits take effect.
	Load func() (Options, error)
	// ConfigFile is watched alongside the docs directory when set.
	ConfigFile string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// OnBuild receives the result of every build, including the first.
	OnBuild func(*Manifest, error)
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Watch builds once, then rebuilds whenever a file under the docs directory
// or the config file changes, until ctx is cancelled. Builds run one at a time on the
// calling goroutine, each with a fresh engine.
func Watch(ctx context.Context, wo WatchOptions) error {
	if wo.Load == nil {
		return errors.New("watch: Load is required")
	}
	logger := wo.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := wo.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	opts, err := wo.Load()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	w := &docsWatcher{
		watcher:    watcher,
		configFile: absPath(wo.ConfigFile),
		docsDir:    absPath(opts.DocsDir),
		siteDir:    absPath(opts.SiteDir),
		logger:     logger,
	}
	if err := w.addTree(w.docsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.DocsDir, err)
	}
	if w.configFile != "" {
		// Editors replace files on save; watch the directory, not the file.
		if err := watcher.Add(filepath.Dir(w.configFile)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", wo.ConfigFile, err)
		}
	}

	build := func(next Options) {
		m, err := Build(ctx, next)
		notify(wo.OnBuild, m, err)
	}

	build(opts)
	logger.Info("watching for changes", "docs_dir", opts.DocsDir)

	var (
		timer   *time.Timer
		pending <-chan time.Time
		changed string
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			logger.Info("change detected, rebuilding", "file", filepath.Base(changed))
			next, err := wo.Load()
			if err != nil {
				notify(wo.OnBuild, nil, err)
				continue
			}
			w.retarget(next)
			build(next)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func notify(fn func(*Manifest, error), m *Manifest, err error) {
	if fn != nil {
		fn(m, err)
	}
}

type docsWatcher struct {
	watcher    *fsnotify.Watcher
	configFile string
	docsDir    string
	siteDir    string
	logger     *slog.Logger
}

// addTree watches root and every non-hidden directory below it, except the
// site directory.
func (w *docsWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.inSite(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// relevant reports whether event should trigger a rebuild. New directories
// are added to the watch list as a side effect.
func (w *docsWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.configFile != "" && absPath(event.Name) == w.configFile {
		return true
	}
	if w.inSite(event.Name) {
		return false
	}

	if !w.inDocs(event.Name) {
		return false
	}

	if event.Has(fsnotify.Create) && isDir(event.Name) {
		if err := w.addTree(event.Name); err != nil {
			w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
		}
	}
	return true
}

// retarget follows a reloaded config to new docs and site directories.
func (w *docsWatcher) retarget(opts Options) {
	w.siteDir = absPath(opts.SiteDir)

	docsDir := absPath(opts.DocsDir)
	if docsDir == w.docsDir {
		return
	}
	for _, path := range w.watcher.WatchList() {
		if within(w.docsDir, path) {
			_ = w.watcher.Remove(path)
		}
	}
	w.docsDir = docsDir
	if err := w.addTree(docsDir); err != nil {
		w.logger.Warn("failed to watch docs directory", "path", docsDir, "error", err)
		return
	}
	w.logger.Info("watching for changes", "docs_dir", docsDir)
}

// inDocs reports whether path is inside the docs directory and not below a
// hidden file or directory.
func (w *docsWatcher) inDocs(path string) bool {
	if w.docsDir == "" {
		return false
	}
	rel, err := filepath.Rel(w.docsDir, absPath(path))
	if err != nil || rel == "." || !within(w.docsDir, absPath(path)) {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	return !isDatabaseSidecar(rel)
}

// sidecarSuffixes name the journal files SQLite and DuckDB write next to a
// database while a build reads it.
var sidecarSuffixes = []string{"-journal", "-wal", "-shm", ".wal"}

func isDatabaseSidecar(path string) bool {
	for _, suffix := range sidecarSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func (w *docsWatcher) inSite(path string) bool {
	if w.siteDir == "" {
		return false
	}
	return within(w.siteDir, absPath(path))
}

func within(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
