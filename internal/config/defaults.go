package config

import "github.com/leapstack-labs/docsql/pkg/core"

// Default configuration values.
const (
	DefaultDocsDir   = "docs"
	DefaultSiteDir   = "site"
	DefaultShowQuery = true
)

// NewGlobalConfig returns a GlobalConfig with default values and no sources.
func NewGlobalConfig() GlobalConfig {
	return GlobalConfig{
		ShowQuery: DefaultShowQuery,
		Databases: map[string]core.DataSourceConfig{},
	}
}

// ApplyLegacyDatabase maps the single-database option of older configs onto
// the default source. An explicit "default" entry in databases wins.
func ApplyLegacyDatabase(g *GlobalConfig, legacy *core.DataSourceConfig) {
	if g == nil || legacy == nil {
		return
	}
	if g.Databases == nil {
		g.Databases = map[string]core.DataSourceConfig{}
	}
	if _, ok := g.Databases[core.DefaultSourceName]; ok {
		return
	}
	g.Databases[core.DefaultSourceName] = *legacy
}
