// Package render produces the substitution text for a query block: the
// dual table view on success, or an inline error view.
package render

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/leapstack-labs/docsql/internal/config"
	"github.com/leapstack-labs/docsql/internal/format"
	"github.com/leapstack-labs/docsql/internal/parser"
	"github.com/leapstack-labs/docsql/pkg/core"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("render").
	Funcs(template.FuncMap{"fence": fence}).
	ParseFS(templateFS, "templates/*.tmpl"))

// Executor runs a query against a named source of the page configuration.
// *pool.Pool satisfies it.
type Executor interface {
	Execute(ctx context.Context, sources map[string]core.DataSourceConfig, name, query string) (*core.ResultTable, error)
}

// Config holds renderer configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Renderer turns query blocks into page text.
type Renderer struct {
	logger *slog.Logger
}

// New creates a renderer.
func New(cfg Config) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger}
}

type blockView struct {
	ShowQuery bool
	Query     string
	HTML      string
	Raw       string
}

type errorView struct {
	Query string
	Error string
}

// Render returns the substitution text for block. It never fails: any error
// on the way becomes the error view.
func (r *Renderer) Render(ctx context.Context, block parser.QueryBlock, doc config.DocumentConfig, exec Executor) string {
	out, _ := r.RenderBlock(ctx, block, doc, exec)
	return out
}

// RenderBlock is Render that also reports the error shown in the error view, if any.
func (r *Renderer) RenderBlock(ctx context.Context, block parser.QueryBlock, doc config.DocumentConfig, exec Executor) (string, error) {
	out, err := r.renderResult(ctx, block, doc, exec)
	if err == nil {
		return out, nil
	}

	r.logger.Warn("query block failed",
		"source", block.Source,
		"error", err.Error())

	return renderError(block.Query, err), err
}

func (r *Renderer) renderResult(ctx context.Context, block parser.QueryBlock, doc config.DocumentConfig, exec Executor) (string, error) {
	table, err := exec.Execute(ctx, doc.Sources, block.Source, block.Query)
	if err != nil {
		return "", err
	}

	res, err := format.Format(table)
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}

	r.logger.Debug("query block rendered",
		"source", block.Source,
		"rows", len(table.Rows),
		"columns", len(table.Columns))

	return execute("block.tmpl", blockView{
		ShowQuery: doc.ShowQuery,
		Query:     block.Query,
		HTML:      res.HTML,
		Raw:       res.Raw,
	})
}

func renderError(query string, err error) string {
	out, tmplErr := execute("error.tmpl", errorView{Query: query, Error: err.Error()})
	if tmplErr != nil {
		return fmt.Sprintf("**Error:** %s", err)
	}
	return out
}

func execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// fence returns a backtick fence longer than any backtick run in s, so cell
// text or query text cannot close the code block early.
func fence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}
