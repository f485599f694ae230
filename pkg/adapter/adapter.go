// Package adapter provides the data source connector contract and the
// kind-keyed connector table used by docsql's connection pool.
//
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves from init(). Adding a backend means adding one package that
// calls Register; the pool never switches on kind.
package adapter

import (
	"context"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// Config is an alias for core.DataSourceConfig.
type Config = core.DataSourceConfig

// Adapter defines the interface that all data source adapters must implement.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	// Closing an adapter that is not connected is a no-op.
	Close() error

	// Query executes a SQL statement and returns the full tabular result.
	Query(ctx context.Context, sql string) (*core.ResultTable, error)

	// Kind returns the backend kind this adapter serves.
	Kind() core.Kind
}

// Describer is implemented by adapters that can render a diagnostic,
// credential-masked description of the connection they would open.
type Describer interface {
	Describe(cfg Config) string
}
