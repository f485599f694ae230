// Package pool owns the data source connections of one documentation build.
//
// Connections are opened lazily on the first query for a source name and
// reused for every later block that selects the same name, across pages,
// until CloseAll tears the pool down. A Pool is not safe for concurrent use;
// each build creates its own.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
)

// memoryPath is the in-memory database path shared by the file-based drivers.
const memoryPath = ":memory:"

// Config holds pool configuration.
type Config struct {
	// BaseDir anchors relative database file paths (the project root).
	BaseDir string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// handle is a live connection for one source name.
type handle struct {
	name string
	kind core.Kind
	cfg  core.DataSourceConfig
	conn adapter.Adapter
}

// Pool maps source names to live connections.
type Pool struct {
	baseDir string
	logger  *slog.Logger
	handles map[string]*handle
	opened  int
}

// New creates an empty pool.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pool{
		baseDir: cfg.BaseDir,
		logger:  logger,
		handles: make(map[string]*handle),
	}
}

// Execute runs query against the source called name, opening the connection
// on first use. sources is the page's effective source mapping.
func (p *Pool) Execute(ctx context.Context, sources map[string]core.DataSourceConfig, name, query string) (*core.ResultTable, error) {
	conn, err := p.Connection(ctx, sources, name)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("executing query", "source", name)

	table, err := conn.Query(ctx, query)
	if err != nil {
		return nil, &QueryExecutionError{Source: name, Query: query, Err: err}
	}
	return table, nil
}

// Connection returns the live connection for name, opening it if needed.
func (p *Pool) Connection(ctx context.Context, sources map[string]core.DataSourceConfig, name string) (adapter.Adapter, error) {
	cfg, ok := sources[name]
	if !ok {
		return nil, &UnknownSourceError{Name: name}
	}
	cfg = p.resolvePaths(cfg)

	if h, ok := p.handles[name]; ok {
		if !h.cfg.Equal(cfg) {
			p.logger.Warn("source configuration changed during build, reusing existing connection",
				"source", name,
				"kind", string(h.kind))
		}
		return h.conn, nil
	}

	h, err := p.open(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	p.handles[name] = h
	return h.conn, nil
}

// Describe returns the credential-masked connection description for name
// without connecting. Adapters that cannot describe themselves yield "".
func (p *Pool) Describe(sources map[string]core.DataSourceConfig, name string) (string, error) {
	cfg, ok := sources[name]
	if !ok {
		return "", &UnknownSourceError{Name: name}
	}
	cfg = p.resolvePaths(cfg)

	conn, err := adapter.NewAdapter(cfg, p.logger)
	if err != nil {
		return "", &ConnectionError{Source: name, Kind: cfg.EffectiveKind(), Err: err}
	}
	if d, ok := conn.(adapter.Describer); ok {
		return d.Describe(cfg), nil
	}
	return "", nil
}

func (p *Pool) open(ctx context.Context, name string, cfg core.DataSourceConfig) (*handle, error) {
	kind := cfg.EffectiveKind()

	conn, err := adapter.NewAdapter(cfg, p.logger)
	if err != nil {
		return nil, &ConnectionError{Source: name, Kind: kind, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConnectionError{Source: name, Kind: kind, Err: err}
	}

	attrs := []any{"source", name, "kind", string(kind)}
	if d, ok := conn.(adapter.Describer); ok {
		attrs = append(attrs, "descriptor", d.Describe(cfg))
	}
	p.logger.Debug("opening connection", attrs...)

	if err := conn.Connect(ctx, cfg); err != nil {
		_ = conn.Close()
		return nil, &ConnectionError{Source: name, Kind: kind, Err: err}
	}

	p.opened++
	p.logger.Info("connection opened", attrs...)

	return &handle{name: name, kind: kind, cfg: cfg, conn: conn}, nil
}

// resolvePaths anchors a relative database file path at the base directory.
func (p *Pool) resolvePaths(cfg core.DataSourceConfig) core.DataSourceConfig {
	if !cfg.EffectiveKind().IsFileBased() || p.baseDir == "" {
		return cfg
	}
	if cfg.Path == "" || cfg.Path == memoryPath || filepath.IsAbs(cfg.Path) {
		return cfg
	}
	cfg.Path = filepath.Join(p.baseDir, cfg.Path)
	return cfg
}

// Close closes the connection for name. Closing a name that was never
// opened, or was already closed, is a no-op.
func (p *Pool) Close(name string) error {
	h, ok := p.handles[name]
	if !ok {
		return nil
	}
	delete(p.handles, name)

	if err := h.conn.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

// CloseAll closes every open connection and empties the pool.
// Close errors are logged and joined; every handle is attempted.
func (p *Pool) CloseAll() error {
	var errs []error
	for _, name := range p.Names() {
		if err := p.Close(name); err != nil {
			p.logger.Error("failed to close connection", "source", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Names returns the names of the open connections, sorted.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.handles))
	for name := range p.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Opened returns how many connections the pool has opened over its lifetime.
func (p *Pool) Opened() int {
	return p.opened
}
