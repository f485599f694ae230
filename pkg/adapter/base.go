package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and Query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.DataSourceConfig
	Logger *slog.Logger
}

// Open opens a database/sql handle and verifies it with a ping.
// On success the handle is stored on the adapter.
func (b *BaseSQLAdapter) Open(ctx context.Context, driverName, dsn string, cfg core.DataSourceConfig) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", driverName, err)
	}

	b.DB = db
	b.Cfg = cfg
	return nil
}

// Close closes the database connection. A second Close is a no-op.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	if b.Logger != nil {
		b.Logger.Debug("closing database connection")
	}
	db := b.DB
	b.DB = nil
	return db.Close()
}

// Query executes a SQL statement and collects every row.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.ResultTable, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return ScanTable(rows)
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ScanTable reads all rows into a ResultTable, preserving column and row order.
func ScanTable(rows *sql.Rows) (*core.ResultTable, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &core.ResultTable{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make([]core.Value, len(cols))
		for i, v := range values {
			row[i] = core.NewValue(v)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
