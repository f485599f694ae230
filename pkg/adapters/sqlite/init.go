// Package sqlite provides a SQLite data source adapter for docsql,
// backed by the pure-Go modernc.org/sqlite driver.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/docsql/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
)

func init() {
	adapter.Register(core.KindSQLite, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
