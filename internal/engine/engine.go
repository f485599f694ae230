// Package engine processes documentation pages: it resolves each page's
// configuration, finds its query blocks and splices in their rendered views.
//
// One Engine serves one build. It owns the connection pool, so connections
// opened for one page are reused by later pages until Close.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/docsql/internal/config"
	"github.com/leapstack-labs/docsql/internal/parser"
	"github.com/leapstack-labs/docsql/internal/pool"
	"github.com/leapstack-labs/docsql/internal/render"
)

// Page is one Markdown document handed over by the host.
type Page struct {
	Path string
	Text string
}

// Stats counts what a build has processed so far.
type Stats struct {
	Pages    int `json:"pages"`
	Blocks   int `json:"blocks"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// Config holds engine configuration.
type Config struct {
	// Global is the build-wide configuration pages are resolved against.
	Global config.GlobalConfig
	// BaseDir anchors relative database paths (the project root).
	BaseDir string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine is the per-build page processor.
type Engine struct {
	global config.GlobalConfig
	pool   *pool.Pool
	logger *slog.Logger
	stats  Stats
}

// New creates an engine with an empty connection pool.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		global: cfg.Global,
		pool:   pool.New(pool.Config{BaseDir: cfg.BaseDir, Logger: logger}),
		logger: logger,
	}
}

// ProcessPage returns page.Text with every query block replaced by its
// rendered view. Text outside blocks, including front matter, is unchanged.
// Block failures are rendered inline and never abort the page.
func (e *Engine) ProcessPage(ctx context.Context, page Page) string {
	e.stats.Pages++
	logger := e.logger.With("page", page.Path)

	doc := config.Resolve(e.global, page.Text)
	for _, w := range doc.Warnings {
		var parseErr *parser.ConfigParseError
		if errors.As(w, &parseErr) && parseErr.File == "" {
			parseErr.File = page.Path
		}
		e.stats.Warnings++
		logger.Warn("ignoring front matter, using global settings", "error", w.Error())
	}

	renderer := render.New(render.Config{Logger: logger})

	var sb strings.Builder
	last := 0
	for block := range parser.Blocks(page.Text) {
		e.stats.Blocks++
		out, err := renderer.RenderBlock(ctx, block, doc, e.pool)
		if err != nil {
			e.stats.Failed++
		}

		sb.WriteString(page.Text[last:block.Start])
		sb.WriteString(out)
		last = block.End
	}

	if last == 0 {
		return page.Text
	}
	sb.WriteString(page.Text[last:])
	return sb.String()
}

// Pool returns the engine's connection pool.
func (e *Engine) Pool() *pool.Pool {
	return e.pool
}

// Stats returns the counters accumulated since New.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Close releases every connection opened during the build.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine", "connections", len(e.pool.Names()))
	return e.pool.CloseAll()
}
