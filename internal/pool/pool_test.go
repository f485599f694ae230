package pool

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/docsql/internal/testutil"
	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"

	_ "github.com/leapstack-labs/docsql/pkg/adapters/sqlite"
)

// fakeKind is served by fakeAdapter, registered for these tests only.
const fakeKind core.Kind = "pooltest"

type fakeStats struct {
	connects int
	queries  int
	closes   int
}

type fakeAdapter struct {
	stats      *fakeStats
	connectErr error
	closeErr   error
}

func (f *fakeAdapter) Connect(context.Context, adapter.Config) error {
	f.stats.connects++
	return f.connectErr
}

func (f *fakeAdapter) Close() error {
	f.stats.closes++
	return f.closeErr
}

func (f *fakeAdapter) Query(_ context.Context, sql string) (*core.ResultTable, error) {
	f.stats.queries++
	if sql == "FAIL" {
		return nil, errors.New("syntax error near FAIL")
	}
	return &core.ResultTable{Columns: []string{"q"}, Rows: [][]core.Value{{core.TextValue(sql)}}}, nil
}

func (f *fakeAdapter) Kind() core.Kind { return fakeKind }

func registerFake(t *testing.T, proto fakeAdapter) *fakeStats {
	t.Helper()
	stats := &fakeStats{}
	adapter.Register(fakeKind, func(*slog.Logger) adapter.Adapter {
		a := proto
		a.stats = stats
		return &a
	})
	return stats
}

func fakeSources(names ...string) map[string]core.DataSourceConfig {
	out := make(map[string]core.DataSourceConfig, len(names))
	for _, n := range names {
		out[n] = core.DataSourceConfig{Type: fakeKind}
	}
	return out
}

func TestPool_UnknownSource(t *testing.T) {
	p := New(Config{Logger: testutil.NewTestLogger(t)})

	_, err := p.Execute(context.Background(), fakeSources("default"), "duckdb_source", "SELECT 1")
	require.Error(t, err)

	var unknown *UnknownSourceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "duckdb_source", unknown.Name)
	assert.Equal(t, "database configuration 'duckdb_source' not found", err.Error())
	assert.Empty(t, p.Names())
}

func TestPool_ReusesConnection(t *testing.T) {
	stats := registerFake(t, fakeAdapter{})
	p := New(Config{Logger: testutil.NewTestLogger(t)})
	ctx := context.Background()
	sources := fakeSources("default", "other")

	for _, q := range []string{"SELECT 1", "SELECT 2", "SELECT 3"} {
		table, err := p.Execute(ctx, sources, "default", q)
		require.NoError(t, err)
		assert.Equal(t, q, table.Rows[0][0].Text)
	}
	_, err := p.Execute(ctx, sources, "other", "SELECT 4")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.connects)
	assert.Equal(t, 4, stats.queries)
	assert.Equal(t, 2, p.Opened())
	assert.Equal(t, []string{"default", "other"}, p.Names())

	require.NoError(t, p.CloseAll())
	assert.Equal(t, 2, stats.closes)
	assert.Empty(t, p.Names())

	// reopening after teardown creates a new connection
	_, err = p.Execute(ctx, sources, "default", "SELECT 5")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.connects)
}

func TestPool_ConnectionFailureIsNotCached(t *testing.T) {
	stats := registerFake(t, fakeAdapter{connectErr: errors.New("login failed for user 'reader'")})
	p := New(Config{Logger: testutil.NewTestLogger(t)})
	ctx := context.Background()

	for range 2 {
		_, err := p.Execute(ctx, fakeSources("default"), "default", "SELECT 1")
		require.Error(t, err)

		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, "default", connErr.Source)
		assert.Equal(t, fakeKind, connErr.Kind)
		assert.Equal(t, "login failed for user 'reader'", err.Error())
	}

	assert.Equal(t, 2, stats.connects, "a failed connection must be retried on the next block")
	assert.Equal(t, 0, stats.queries)
	assert.Empty(t, p.Names())
}

func TestPool_QueryError(t *testing.T) {
	registerFake(t, fakeAdapter{})
	p := New(Config{})

	_, err := p.Execute(context.Background(), fakeSources("default"), "default", "FAIL")
	require.Error(t, err)

	var qErr *QueryExecutionError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, "default", qErr.Source)
	assert.Equal(t, "FAIL", qErr.Query)
	assert.Equal(t, "syntax error near FAIL", err.Error())

	// the connection survives a failed query
	assert.Equal(t, []string{"default"}, p.Names())
}

func TestPool_UnknownKind(t *testing.T) {
	p := New(Config{})
	sources := map[string]core.DataSourceConfig{"default": {Type: "oracle"}}

	_, err := p.Execute(context.Background(), sources, "default", "SELECT 1")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	var unknown *adapter.UnknownAdapterError
	assert.ErrorAs(t, err, &unknown)
}

func TestPool_InvalidConfig(t *testing.T) {
	p := New(Config{})
	sources := map[string]core.DataSourceConfig{"default": {Type: core.KindSQLite}}

	_, err := p.Execute(context.Background(), sources, "default", "SELECT 1")

	var missing *core.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "path", missing.Field)
}

func TestPool_ChangedConfigReusesAndWarns(t *testing.T) {
	stats := registerFake(t, fakeAdapter{})
	logger, logs := testutil.NewCaptureLogger(t)
	p := New(Config{Logger: logger})
	ctx := context.Background()

	_, err := p.Execute(ctx, map[string]core.DataSourceConfig{"default": {Type: fakeKind, Path: "a"}}, "default", "SELECT 1")
	require.NoError(t, err)
	_, err = p.Execute(ctx, map[string]core.DataSourceConfig{"default": {Type: fakeKind, Path: "b"}}, "default", "SELECT 1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.connects)
	warnings := logs.Lines("WARN")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "source=default")
}

func TestPool_CloseAllJoinsErrors(t *testing.T) {
	stats := registerFake(t, fakeAdapter{closeErr: errors.New("connection reset")})
	p := New(Config{Logger: testutil.NewTestLogger(t)})
	ctx := context.Background()
	sources := fakeSources("a", "b")

	for _, name := range []string{"a", "b"} {
		_, err := p.Execute(ctx, sources, name, "SELECT 1")
		require.NoError(t, err)
	}

	err := p.CloseAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing a: connection reset")
	assert.Contains(t, err.Error(), "closing b: connection reset")
	assert.Equal(t, 2, stats.closes, "every handle is closed even when one fails")
	assert.Empty(t, p.Names())

	// closing again is a no-op
	assert.NoError(t, p.CloseAll())
	assert.NoError(t, p.Close("a"))
	assert.NoError(t, p.Close("never-opened"))
	assert.Equal(t, 2, stats.closes)
}

func TestPool_SQLiteRelativePathAndReuse(t *testing.T) {
	dir := t.TempDir()
	testutil.CreatePopulationDB(t, dir, "population.db")

	p := New(Config{BaseDir: dir, Logger: testutil.NewTestLogger(t)})
	defer func() { _ = p.CloseAll() }()

	ctx := context.Background()
	sources := map[string]core.DataSourceConfig{"default": {Path: "population.db"}}

	table, err := p.Execute(ctx, sources, "default", "SELECT name FROM countries ORDER BY id LIMIT 1")
	require.NoError(t, err)
	assert.Equal(t, "China", table.Rows[0][0].Text)

	table, err = p.Execute(ctx, sources, "default", "SELECT COUNT(*) AS n FROM cities")
	require.NoError(t, err)
	assert.Equal(t, int64(10), table.Rows[0][0].Int)

	assert.Equal(t, 1, p.Opened())
}

func TestPool_ResolvePaths(t *testing.T) {
	p := New(Config{BaseDir: "/project"})

	tests := []struct {
		name string
		cfg  core.DataSourceConfig
		want string
	}{
		{"relative sqlite", core.DataSourceConfig{Path: "data/pop.db"}, filepath.Join("/project", "data/pop.db")},
		{"absolute", core.DataSourceConfig{Path: "/abs/pop.db"}, "/abs/pop.db"},
		{"memory", core.DataSourceConfig{Type: core.KindDuckDB, Path: ":memory:"}, ":memory:"},
		{"server kind untouched", core.DataSourceConfig{Type: core.KindMSSQL, Path: "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.resolvePaths(tt.cfg).Path)
		})
	}
}

func TestPool_Describe(t *testing.T) {
	p := New(Config{BaseDir: "/project"})
	sources := map[string]core.DataSourceConfig{
		"default": {Path: "pop.db"},
		"fake":    {Type: fakeKind},
		"bogus":   {Type: "oracle"},
	}
	registerFake(t, fakeAdapter{})

	desc, err := p.Describe(sources, "default")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/project", "pop.db"), desc)

	desc, err = p.Describe(sources, "fake")
	require.NoError(t, err)
	assert.Empty(t, desc, "adapters without Describe yield nothing")

	_, err = p.Describe(sources, "bogus")
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)

	_, err = p.Describe(sources, "missing")
	var unknown *UnknownSourceError
	require.ErrorAs(t, err, &unknown)

	assert.Equal(t, 0, p.Opened())
}
