package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/docsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return MemoryPath
			},
		},
		{
			name: "empty path is in-memory",
			setupPath: func(_ *testing.T) string {
				return ""
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "population.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.DataSourceConfig{Type: core.KindDuckDB, Path: dbPath}))
			defer func() { _ = adp.Close() }()

			assert.True(t, adp.IsConnected())
			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	_, err := adp.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
	}{
		{"close without connect", false},
		{"close after connect", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := New(nil)
			if tt.connect {
				require.NoError(t, adp.Connect(context.Background(), core.DataSourceConfig{Path: MemoryPath}))
			}
			assert.NoError(t, adp.Close())
		})
	}
}

func TestAdapter_Query(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.DataSourceConfig{Path: MemoryPath}))
	defer func() { _ = adp.Close() }()

	_, err := adp.DB.ExecContext(ctx, `
		CREATE TABLE countries (
			id INTEGER,
			name VARCHAR,
			population BIGINT,
			gdp_usd DOUBLE,
			continent VARCHAR
		)
	`)
	require.NoError(t, err)
	_, err = adp.DB.ExecContext(ctx, `
		INSERT INTO countries VALUES
			(1, 'China', 1439323776, 14342903, 'Asia'),
			(3, 'United States', 331002651, 21433226, 'North America'),
			(4, 'Antarctica', 0, NULL, NULL)
	`)
	require.NoError(t, err)

	table, err := adp.Query(ctx, `SELECT name, population, gdp_usd, continent FROM countries ORDER BY id`)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "population", "gdp_usd", "continent"}, table.Columns)
	require.Len(t, table.Rows, 3)

	us := table.Rows[1]
	assert.Equal(t, "United States", us[0].Text)
	assert.Equal(t, int64(331002651), us[1].Int)
	assert.True(t, us[2].IsNumber())
	assert.InDelta(t, 21433226.0, us[2].Float, 0.5)

	assert.True(t, table.Rows[2][2].IsNull())
	assert.True(t, table.Rows[2][3].IsNull())
}

func TestAdapter_QueryError(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.DataSourceConfig{Path: MemoryPath}))
	defer func() { _ = adp.Close() }()

	_, err := adp.Query(ctx, "SELECT * FROM no_such_table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_table")
}

func TestAdapter_Describe(t *testing.T) {
	adp := New(nil)
	assert.Equal(t, MemoryPath, adp.Describe(core.DataSourceConfig{}))
	assert.Equal(t, "data/pop.duckdb", adp.Describe(core.DataSourceConfig{Path: "data/pop.duckdb"}))
	assert.Equal(t, core.KindDuckDB, adp.Kind())
}
