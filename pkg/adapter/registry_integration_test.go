package adapter_test

import (
	"testing"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/docsql/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/docsql/pkg/adapters/mssql"
	_ "github.com/leapstack-labs/docsql/pkg/adapters/postgres"
)

func TestListAdapters(t *testing.T) {
	adapters := adapter.ListAdapters()

	assert.Contains(t, adapters, "duckdb")
	assert.Contains(t, adapters, "mssql")
	assert.Contains(t, adapters, "postgres")
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name string
		kind core.Kind
		want bool
	}{
		{"duckdb registered", core.KindDuckDB, true},
		{"mssql registered", core.KindMSSQL, true},
		{"postgres registered", core.KindPostgres, true},
		{"unknown not registered", "unknown_db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.IsRegistered(tt.kind))
		})
	}
}

func TestGet(t *testing.T) {
	factory, ok := adapter.Get(core.KindDuckDB)
	require.True(t, ok)
	require.NotNil(t, factory)

	_, ok = adapter.Get("nonexistent")
	assert.False(t, ok)
}

func TestNewAdapter_Success(t *testing.T) {
	adp, err := adapter.NewAdapter(core.DataSourceConfig{Type: "DuckDB", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NotNil(t, adp)
	assert.Equal(t, core.KindDuckDB, adp.Kind())
}

func TestNewAdapter_UnknownTypeListsAvailable(t *testing.T) {
	_, err := adapter.NewAdapter(core.DataSourceConfig{Type: "unknown_adapter"}, nil)
	require.Error(t, err)

	var unknownErr *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "unknown_adapter", unknownErr.Type)
	assert.Contains(t, unknownErr.Available, "duckdb")
}
