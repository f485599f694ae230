// Package config loads the docsql CLI configuration.
//
// Settings are layered with koanf, lowest to highest: built-in defaults,
// docsql.yaml, DOCSQL_* environment variables, then explicit flags.
package config

import (
	intconfig "github.com/leapstack-labs/docsql/internal/config"
	"github.com/leapstack-labs/docsql/pkg/core"
)

// DataSourceConfig is an alias for the shared data source configuration.
type DataSourceConfig = core.DataSourceConfig

// Config holds all CLI configuration options.
type Config struct {
	DocsDir      string                      `koanf:"docs_dir"`
	SiteDir      string                      `koanf:"site_dir"`
	ShowQuery    bool                        `koanf:"show_query"`
	Databases    map[string]DataSourceConfig `koanf:"databases"`
	Database     *DataSourceConfig           `koanf:"database"` // Deprecated: use databases.default
	Verbose      bool                        `koanf:"verbose"`
	LogFormat    string                      `koanf:"log_format"`
	OutputFormat string                      `koanf:"output"`
	MinifyAssets bool                        `koanf:"minify_assets"`

	// ProjectRoot anchors relative paths. Not read from the file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultDocsDir      = intconfig.DefaultDocsDir
	DefaultSiteDir      = intconfig.DefaultSiteDir
	DefaultShowQuery    = intconfig.DefaultShowQuery
	DefaultLogFormat    = "text"
	DefaultOutput       = "auto"
	DefaultMinifyAssets = true
)

// Config file names, in lookup order.
var configFileNames = []string{"docsql.yaml", "docsql.yml"}

// Global returns the build-wide query configuration, with the legacy
// database option folded into the default source.
func (c *Config) Global() intconfig.GlobalConfig {
	g := intconfig.NewGlobalConfig()
	g.ShowQuery = c.ShowQuery
	for name, src := range c.Databases {
		g.Databases[name] = src
	}
	intconfig.ApplyLegacyDatabase(&g, c.Database)
	return g
}
