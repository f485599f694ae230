package sqlite

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Kind returns core.KindSQLite.
func (a *Adapter) Kind() core.Kind {
	return core.KindSQLite
}

// Connect opens the database file at cfg.Path.
// A missing file is created, matching the sqlite3 command-line behavior.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to sqlite", slog.String("path", cfg.Path))
	if err := a.Open(ctx, "sqlite", cfg.Path, cfg); err != nil {
		return err
	}
	// A single connection keeps ":memory:" databases coherent across queries.
	a.DB.SetMaxOpenConns(1)
	return nil
}

// Describe returns the database path.
func (a *Adapter) Describe(cfg adapter.Config) string {
	return cfg.Path
}
