// Package duckdb provides a DuckDB data source adapter for docsql.
//
// This file registers the DuckDB adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/docsql/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
)

func init() {
	adapter.Register(core.KindDuckDB, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
