package core

import (
	"fmt"
	"strings"
)

// Kind identifies a data source backend.
type Kind string

// Supported backend kinds.
const (
	KindSQLite   Kind = "sqlite"
	KindDuckDB   Kind = "duckdb"
	KindMSSQL    Kind = "mssql"
	KindPostgres Kind = "postgres"
)

// DefaultKind is used when a data source omits its type.
const DefaultKind = KindSQLite

// DefaultSourceName is the logical source of a query block without a selector.
const DefaultSourceName = "default"

// IsFileBased reports whether the kind opens a local database file by path.
func (k Kind) IsFileBased() bool {
	return k == KindSQLite || k == KindDuckDB
}

// DataSourceConfig holds one named data source configuration.
// The same struct is decoded from the global config file (koanf) and from
// page front matter (mapstructure), so both share the koanf tags.
type DataSourceConfig struct {
	Type Kind `koanf:"type" json:"type"`

	// File-based databases (SQLite, DuckDB)
	Path string `koanf:"path" json:"path,omitempty"`

	// Server databases
	Server   string `koanf:"server" json:"server,omitempty"`
	Database string `koanf:"database" json:"database,omitempty"`
	Driver   string `koanf:"driver" json:"driver,omitempty"`
	Username string `koanf:"username" json:"username,omitempty"`
	Password string `koanf:"password" json:"-"` // may be ${ENV_VAR}
	Port     int    `koanf:"port" json:"port,omitempty"`

	// TrustedConnection is a presence flag: any value enables integrated auth.
	TrustedConnection      *bool `koanf:"trusted_connection" json:"trusted_connection,omitempty"`
	Encrypt                *bool `koanf:"encrypt" json:"encrypt,omitempty"`
	TrustServerCertificate *bool `koanf:"trust_server_certificate" json:"trust_server_certificate,omitempty"`
}

// EffectiveKind returns the configured kind, lowercased, or DefaultKind when unset.
func (c DataSourceConfig) EffectiveKind() Kind {
	if c.Type == "" {
		return DefaultKind
	}
	return Kind(strings.ToLower(string(c.Type)))
}

// Trusted reports whether integrated authentication was requested.
func (c DataSourceConfig) Trusted() bool {
	return c.TrustedConnection != nil
}

// Equal reports whether two configs describe the same connection.
func (c DataSourceConfig) Equal(o DataSourceConfig) bool {
	return c.EffectiveKind() == o.EffectiveKind() &&
		c.Path == o.Path &&
		c.Server == o.Server &&
		c.Database == o.Database &&
		c.Driver == o.Driver &&
		c.Username == o.Username &&
		c.Password == o.Password &&
		c.Port == o.Port &&
		(c.TrustedConnection != nil) == (o.TrustedConnection != nil) &&
		boolPtrEqual(c.Encrypt, o.Encrypt) &&
		boolPtrEqual(c.TrustServerCertificate, o.TrustServerCertificate)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks the fields required by the config's kind.
// Unknown kinds are not rejected here; the adapter registry owns that decision.
func (c DataSourceConfig) Validate() error {
	kind := c.EffectiveKind()
	switch {
	case kind.IsFileBased():
		if c.Path == "" {
			return &MissingFieldError{Kind: kind, Field: "path"}
		}
	case kind == KindMSSQL || kind == KindPostgres:
		if c.Server == "" {
			return &MissingFieldError{Kind: kind, Field: "server"}
		}
		if c.Database == "" {
			return &MissingFieldError{Kind: kind, Field: "database"}
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// MissingFieldError is returned when a data source lacks a field its kind requires.
type MissingFieldError struct {
	Kind  Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s data source requires %q", e.Kind, e.Field)
}

// CloneSources returns a shallow copy of a source mapping.
func CloneSources(src map[string]DataSourceConfig) map[string]DataSourceConfig {
	out := make(map[string]DataSourceConfig, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
