package mssql

import (
	"testing"

	"github.com/leapstack-labs/docsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNewDescriptor(t *testing.T) {
	tests := []struct {
		name   string
		cfg    core.DataSourceConfig
		env    map[string]string
		want   string
		masked string
	}{
		{
			name: "sql login with env password",
			cfg: core.DataSourceConfig{
				Type:     core.KindMSSQL,
				Server:   "db.example.com",
				Database: "population",
				Username: "reader",
				Password: "${DOCSQL_TEST_MSSQL_PWD}",
			},
			env:    map[string]string{"DOCSQL_TEST_MSSQL_PWD": "s3cret"},
			want:   "Driver=ODBC Driver 18 for SQL Server;Server=db.example.com;Database=population;Uid=reader;Pwd=s3cret",
			masked: "Driver=ODBC Driver 18 for SQL Server;Server=db.example.com;Database=population;Uid=reader;Pwd=***",
		},
		{
			name: "unset env password resolves empty",
			cfg: core.DataSourceConfig{
				Server:   "db",
				Database: "pop",
				Username: "reader",
				Password: "${DB_PASSWORD_DOCSQL_UNSET}",
			},
			want:   "Driver=ODBC Driver 18 for SQL Server;Server=db;Database=pop;Uid=reader;Pwd=",
			masked: "Driver=ODBC Driver 18 for SQL Server;Server=db;Database=pop;Uid=reader;Pwd=***",
		},
		{
			name: "trusted connection omits credentials",
			cfg: core.DataSourceConfig{
				Server:            `sql01\REPORTING`,
				Database:          "pop",
				Username:          "ignored",
				Password:          "ignored",
				TrustedConnection: boolPtr(false),
			},
			want:   `Driver=ODBC Driver 18 for SQL Server;Server=sql01\REPORTING;Database=pop;Trusted_Connection=yes`,
			masked: `Driver=ODBC Driver 18 for SQL Server;Server=sql01\REPORTING;Database=pop;Trusted_Connection=yes`,
		},
		{
			name: "flags port and custom driver",
			cfg: core.DataSourceConfig{
				Server:                 "db",
				Database:               "pop",
				Driver:                 "ODBC Driver 17 for SQL Server",
				TrustedConnection:      boolPtr(true),
				Encrypt:                boolPtr(false),
				TrustServerCertificate: boolPtr(true),
				Port:                   1433,
			},
			want:   "Driver=ODBC Driver 17 for SQL Server;Server=db;Database=pop;Trusted_Connection=yes;Encrypt=no;TrustServerCertificate=yes;Port=1433",
			masked: "Driver=ODBC Driver 17 for SQL Server;Server=db;Database=pop;Trusted_Connection=yes;Encrypt=no;TrustServerCertificate=yes;Port=1433",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			d := NewDescriptor(tt.cfg)
			assert.Equal(t, tt.want, d.String())
			assert.Equal(t, tt.masked, d.Masked())
		})
	}
}

func TestDescriptor_URL(t *testing.T) {
	t.Setenv("DOCSQL_TEST_MSSQL_PWD", "p@ss")

	tests := []struct {
		name   string
		cfg    core.DataSourceConfig
		verify func(t *testing.T, d Descriptor)
	}{
		{
			name: "login with port and flags",
			cfg: core.DataSourceConfig{
				Server:                 "db.example.com",
				Database:               "population",
				Username:               "reader",
				Password:               "${DOCSQL_TEST_MSSQL_PWD}",
				Encrypt:                boolPtr(true),
				TrustServerCertificate: boolPtr(true),
				Port:                   14330,
			},
			verify: func(t *testing.T, d Descriptor) {
				u := d.URL()
				assert.Equal(t, "sqlserver", u.Scheme)
				assert.Equal(t, "db.example.com:14330", u.Host)
				require.NotNil(t, u.User)
				assert.Equal(t, "reader", u.User.Username())
				pwd, _ := u.User.Password()
				assert.Equal(t, "p@ss", pwd)
				q := u.Query()
				assert.Equal(t, "population", q.Get("database"))
				assert.Equal(t, "yes", q.Get("encrypt"))
				assert.Equal(t, "true", q.Get("TrustServerCertificate"))
				assert.NotContains(t, u.Redacted(), "p@ss")
			},
		},
		{
			name: "trusted named instance",
			cfg: core.DataSourceConfig{
				Server:            `sql01\REPORTING`,
				Database:          "pop",
				TrustedConnection: boolPtr(true),
			},
			verify: func(t *testing.T, d Descriptor) {
				u := d.URL()
				assert.Equal(t, "sql01", u.Host)
				assert.Equal(t, "/REPORTING", u.Path)
				assert.Nil(t, u.User)
				assert.Empty(t, u.Query().Get("encrypt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, NewDescriptor(tt.cfg))
		})
	}
}

func TestAdapter_Describe(t *testing.T) {
	adp := New(nil)
	desc := adp.Describe(core.DataSourceConfig{Server: "db", Database: "pop", Username: "u", Password: "plain"})
	assert.Contains(t, desc, "Pwd=***")
	assert.NotContains(t, desc, "plain")
	assert.Equal(t, core.KindMSSQL, adp.Kind())
}
