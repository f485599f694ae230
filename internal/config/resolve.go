package config

import (
	"github.com/leapstack-labs/docsql/internal/parser"
	"github.com/leapstack-labs/docsql/pkg/core"
)

// Resolve computes the effective configuration for a page.
//
// Front matter show_query overrides the global value only when present.
// Front matter databases entries replace same-named global entries wholesale.
// A front matter that cannot be parsed is reported in Warnings and the page
// falls back to the global settings.
func Resolve(global GlobalConfig, text string) DocumentConfig {
	doc := DocumentConfig{
		ShowQuery: global.ShowQuery,
		Sources:   core.CloneSources(global.Databases),
	}

	fm, err := parser.ExtractFrontmatter(text)
	if err != nil {
		doc.Warnings = append(doc.Warnings, err)
		return doc
	}

	if fm.Config.ShowQuery != nil {
		doc.ShowQuery = *fm.Config.ShowQuery
	}
	for name, src := range fm.Config.Databases {
		doc.Sources[name] = src
	}

	return doc
}
