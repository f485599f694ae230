// Package docs builds a documentation site: it runs every Markdown page of a
// docs directory through the query engine, copies everything else, and
// writes the toggle assets the rendered blocks rely on.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/docsql/internal/config"
	"github.com/leapstack-labs/docsql/internal/engine"
)

// Options configures a site build.
type Options struct {
	// DocsDir is the source tree of Markdown pages and static files.
	DocsDir string
	// SiteDir receives the processed tree.
	SiteDir string
	// Global is the build-wide query configuration.
	Global config.GlobalConfig
	// BaseDir anchors relative database paths. Defaults to DocsDir's parent.
	BaseDir string
	// MinifyAssets passes the toggle assets through esbuild.
	MinifyAssets bool
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) baseDir() string {
	if o.BaseDir != "" {
		return o.BaseDir
	}
	return filepath.Dir(filepath.Clean(o.DocsDir))
}

// IsPage reports whether path is a Markdown page the engine processes.
func IsPage(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// Build processes opts.DocsDir into opts.SiteDir with a single engine, so a
// connection opened for one page is reused by every later page. Query
// failures are rendered into the pages and counted in the manifest; only
// filesystem errors and cancellation abort the build.
func Build(ctx context.Context, opts Options) (*Manifest, error) {
	start := time.Now()
	logger := opts.logger()

	info, err := os.Stat(opts.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs directory %s is not a directory", opts.DocsDir)
	}
	if err := os.MkdirAll(opts.SiteDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create site directory: %w", err)
	}

	m := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: start.UTC(),
		DocsDir:     opts.DocsDir,
		SiteDir:     opts.SiteDir,
	}
	logger = logger.With("build", m.BuildID)
	logger.Info("build started", "docs_dir", opts.DocsDir, "site_dir", opts.SiteDir)

	eng := engine.New(engine.Config{
		Global:  opts.Global,
		BaseDir: opts.baseDir(),
		Logger:  logger,
	})

	walkErr := walkDocs(ctx, opts, func(rel, src string) error {
		dst := filepath.Join(opts.SiteDir, rel)
		if !IsPage(rel) {
			m.Copied++
			return copyFile(src, dst)
		}

		entry, err := processPage(ctx, eng, rel, src, dst)
		if err != nil {
			return err
		}
		m.Pages = append(m.Pages, entry)
		return nil
	})

	m.Connections = eng.Pool().Names()
	m.Stats = eng.Stats()
	if err := eng.Close(); err != nil {
		// Close failures are already logged by the pool
		logger.Debug("engine closed with errors", "error", err)
	}
	if walkErr != nil {
		return nil, walkErr
	}

	m.Assets, err = WriteAssets(opts.SiteDir, opts.MinifyAssets)
	if err != nil {
		return nil, err
	}

	m.finish(start)
	logger.Info("build finished",
		"pages", m.Stats.Pages,
		"blocks", m.Stats.Blocks,
		"failed", m.Stats.Failed,
		"warnings", m.Stats.Warnings,
		"duration", m.Duration,
	)
	return m, nil
}

func processPage(ctx context.Context, eng *engine.Engine, rel, src, dst string) (PageEntry, error) {
	content, err := os.ReadFile(src) //nolint:gosec // G304: src is inside the docs directory
	if err != nil {
		return PageEntry{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	before := eng.Stats()
	out := eng.ProcessPage(ctx, engine.Page{Path: filepath.ToSlash(rel), Text: string(content)})
	after := eng.Stats()

	if err := writeFile(dst, []byte(out)); err != nil {
		return PageEntry{}, err
	}
	return PageEntry{
		Path:   filepath.ToSlash(rel),
		Blocks: after.Blocks - before.Blocks,
		Failed: after.Failed - before.Failed,
	}, nil
}

// walkDocs calls fn for every regular file under opts.DocsDir with its path
// relative to the docs directory. Hidden entries and the site directory
// (when nested inside the docs directory) are skipped.
func walkDocs(ctx context.Context, opts Options, fn func(rel, src string) error) error {
	siteAbs, _ := filepath.Abs(opts.SiteDir)

	return filepath.WalkDir(opts.DocsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != opts.DocsDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == siteAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(opts.DocsDir, path)
		if err != nil {
			return err
		}
		return fn(rel, path)
	})
}

func writeFile(dst string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	srcFile, err := os.Open(src) //nolint:gosec // G304: src is inside the docs directory
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst) //nolint:gosec // G304: dst is inside the site directory
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, dstFile.Close()) }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
