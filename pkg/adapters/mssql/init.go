// Package mssql provides a Microsoft SQL Server data source adapter for
// docsql, backed by github.com/microsoft/go-mssqldb.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/docsql/pkg/adapters/mssql"
package mssql

import (
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
)

func init() {
	adapter.Register(core.KindMSSQL, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
