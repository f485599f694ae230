package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// DefaultPort is used when the config leaves port unset.
const DefaultPort = 5432

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Kind returns core.KindPostgres.
func (a *Adapter) Kind() core.Kind {
	return core.KindPostgres
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to postgres", slog.String("dsn", buildPostgresDSN(cfg, true)))
	return a.Open(ctx, "pgx", buildPostgresDSN(cfg, false), cfg)
}

// Describe returns the DSN with the password masked.
func (a *Adapter) Describe(cfg adapter.Config) string {
	return buildPostgresDSN(cfg, true)
}

// buildPostgresDSN constructs a key=value PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config, mask bool) string {
	host := cfg.Server
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	sslmode := "disable"
	if cfg.Encrypt != nil && *cfg.Encrypt {
		sslmode = "require"
		if cfg.TrustServerCertificate != nil && !*cfg.TrustServerCertificate {
			sslmode = "verify-full"
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		quote(host), port, quote(cfg.Database), sslmode)

	if user := core.ResolveCredential(cfg.Username); user != "" {
		dsn += " user=" + quote(user)
	}
	if pwd := core.ResolveCredential(cfg.Password); pwd != "" {
		if mask {
			pwd = "***"
		}
		dsn += " password=" + quote(pwd)
	}

	return dsn
}

// quote wraps a DSN value in single quotes when it contains spaces,
// quotes or backslashes, or is empty.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
