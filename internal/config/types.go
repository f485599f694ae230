// Package config resolves the effective per-page configuration from the
// global docsql settings and a page's front matter.
//
// This package is decoupled from CLI concerns: the CLI loads GlobalConfig
// with koanf, and the engine calls Resolve once per page.
package config

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/docsql/pkg/adapter"
	"github.com/leapstack-labs/docsql/pkg/core"
)

// GlobalConfig holds the build-wide settings that pages may override.
type GlobalConfig struct {
	ShowQuery bool                             `koanf:"show_query"`
	Databases map[string]core.DataSourceConfig `koanf:"databases"`
}

// DocumentConfig is the effective configuration for one page.
// It is derived fresh for every page and never written back.
type DocumentConfig struct {
	ShowQuery bool
	Sources   map[string]core.DataSourceConfig

	// Warnings holds recoverable problems found while resolving,
	// such as a front matter that failed to parse.
	Warnings []error
}

// SourceNames returns the configured source names, sorted.
func (g GlobalConfig) SourceNames() []string {
	names := make([]string, 0, len(g.Databases))
	for name := range g.Databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every global source names a registered kind
// and carries the fields its kind requires.
func (g GlobalConfig) Validate() error {
	for _, name := range g.SourceNames() {
		src := g.Databases[name]
		kind := src.EffectiveKind()
		if !adapter.IsRegistered(kind) {
			return fmt.Errorf("database %q: %w", name, &adapter.UnknownAdapterError{
				Type:      string(src.Type),
				Available: adapter.ListAdapters(),
			})
		}
		if err := src.Validate(); err != nil {
			return fmt.Errorf("database %q: %w", name, err)
		}
	}
	return nil
}
