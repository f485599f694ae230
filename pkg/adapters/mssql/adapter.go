package mssql

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"

	_ "github.com/microsoft/go-mssqldb" // sqlserver driver
)

// Adapter implements the adapter.Adapter interface for SQL Server.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQL Server adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Kind returns core.KindMSSQL.
func (a *Adapter) Kind() core.Kind {
	return core.KindMSSQL
}

// Connect establishes a connection to SQL Server.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	desc := NewDescriptor(cfg)
	u := desc.URL()

	a.Logger.Debug("connecting to sqlserver",
		slog.String("descriptor", desc.Masked()),
		slog.String("url", u.Redacted()))

	return a.Open(ctx, "sqlserver", u.String(), cfg)
}

// Describe returns the masked connection descriptor.
func (a *Adapter) Describe(cfg adapter.Config) string {
	return NewDescriptor(cfg).Masked()
}
