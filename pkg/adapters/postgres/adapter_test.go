package postgres

import (
	"context"
	"testing"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		mask     bool
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Server:   "localhost",
				Port:     5432,
				Database: "population",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=population sslmode=disable user=user password=pass",
		},
		{
			name: "masked password",
			config: adapter.Config{
				Server:   "localhost",
				Database: "population",
				Username: "user",
				Password: "pass",
			},
			mask:     true,
			expected: "host=localhost port=5432 dbname=population sslmode=disable user=user password=***",
		},
		{
			name: "encrypt requires ssl",
			config: adapter.Config{
				Server:   "prod.example.com",
				Database: "proddb",
				Username: "admin",
				Encrypt:  boolPtr(true),
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "encrypt without trusting certificate verifies",
			config: adapter.Config{
				Server:                 "prod.example.com",
				Database:               "proddb",
				Encrypt:                boolPtr(true),
				TrustServerCertificate: boolPtr(false),
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=verify-full",
		},
		{
			name:     "defaults",
			config:   adapter.Config{Database: "mydb"},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "quoted values",
			config: adapter.Config{
				Server:   "db.example.com",
				Port:     5433,
				Database: "my db",
				Password: `it's`,
			},
			expected: `host=db.example.com port=5433 dbname='my db' sslmode=disable password='it\'s'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config, tt.mask))
		})
	}
}

func TestBuildPostgresDSN_EnvCredentials(t *testing.T) {
	t.Setenv("DOCSQL_TEST_PG_PASSWORD", "from-env")

	dsn := buildPostgresDSN(adapter.Config{
		Server:   "db",
		Database: "pop",
		Username: "reader",
		Password: "${DOCSQL_TEST_PG_PASSWORD}",
	}, false)
	assert.Contains(t, dsn, "password=from-env")
}

func TestNew(t *testing.T) {
	adp := New(nil)

	assert.NotNil(t, adp)
	assert.Nil(t, adp.DB)
	assert.False(t, adp.IsConnected())
	assert.Equal(t, core.KindPostgres, adp.Kind())

	var _ adapter.Adapter = (*Adapter)(nil)
	var _ adapter.Describer = (*Adapter)(nil)
}

func TestAdapter_NotConnected(t *testing.T) {
	_, err := New(nil).Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

func TestAdapter_Registry(t *testing.T) {
	assert.True(t, adapter.IsRegistered(core.KindPostgres))

	factory, ok := adapter.Get(core.KindPostgres)
	require.True(t, ok)

	pg, ok := factory(nil).(*Adapter)
	require.True(t, ok, "factory should return *Adapter")
	assert.NotNil(t, pg.Logger)
}

func TestAdapter_Close(t *testing.T) {
	adp := New(nil)
	assert.NoError(t, adp.Close())
}
