package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/docsql/pkg/core"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			assert.NoError(t, base.Close())
			assert.False(t, base.IsConnected())
			// second close is a no-op
			assert.NoError(t, base.Close())
		})
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
		validate  func(t *testing.T, table *core.ResultTable)
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"name", "population"}).
					AddRow("China", int64(1439323776)).
					AddRow("India", int64(1380004385))
				mock.ExpectQuery("SELECT name, population FROM countries").WillReturnRows(rows)
			},
			sql: "SELECT name, population FROM countries",
			validate: func(t *testing.T, table *core.ResultTable) {
				assert.Equal(t, []string{"name", "population"}, table.Columns)
				require.Len(t, table.Rows, 2)
				assert.Equal(t, "China", table.Rows[0][0].Text)
				assert.Equal(t, int64(1439323776), table.Rows[0][1].Int)
				assert.Equal(t, "India", table.Rows[1][0].Text)
			},
		},
		{
			name:    "query with nulls",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"gdp_usd"}).AddRow(nil).AddRow(12.5)
				mock.ExpectQuery("SELECT gdp_usd").WillReturnRows(rows)
			},
			sql: "SELECT gdp_usd FROM countries",
			validate: func(t *testing.T, table *core.ResultTable) {
				require.Len(t, table.Rows, 2)
				assert.True(t, table.Rows[0][0].IsNull())
				assert.InDelta(t, 12.5, table.Rows[1][0].Float, 0.0001)
			},
		},
		{
			name:    "zero rows keeps columns",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			sql: "SELECT id FROM countries WHERE 1=0",
			validate: func(t *testing.T, table *core.ResultTable) {
				assert.Equal(t, []string{"id"}, table.Columns)
				assert.Empty(t, table.Rows)
			},
		},
		{
			name:    "query error surfaces backend message",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
			},
			sql:       "SELECT * FROM missing",
			expectErr: true,
			errMsg:    assert.AnError.Error(),
		},
		{
			name:    "row error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow(1).RowError(0, assert.AnError)
				mock.ExpectQuery("SELECT id").WillReturnRows(rows)
			},
			sql:       "SELECT id FROM countries",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				base.DB = db
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
			}

			table, err := base.Query(context.Background(), tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, table)
			}
		})
	}
}
