package duckdb

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// MemoryPath opens a transient in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Kind returns core.KindDuckDB.
func (a *Adapter) Kind() core.Kind {
	return core.KindDuckDB
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = MemoryPath
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))
	return a.Open(ctx, "duckdb", path, cfg)
}

// Describe returns the database path.
func (a *Adapter) Describe(cfg adapter.Config) string {
	if cfg.Path == "" {
		return MemoryPath
	}
	return cfg.Path
}
