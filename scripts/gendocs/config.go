package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/docsql/internal/cli/config"
	"github.com/leapstack-labs/docsql/pkg/adapters/mssql"
	"github.com/leapstack-labs/docsql/pkg/core"
)

// generateConfigDocs generates the docsql.yaml and front matter reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Required    string
	Default     string
	Description string
	Category    string // "project" or "source"
}

// configSchema mirrors internal/cli/config.Config and core.DataSourceConfig.
func configSchema() []ConfigField {
	return []ConfigField{
		{Name: "docs_dir", Type: "string", Default: config.DefaultDocsDir, Description: "Markdown sources, relative to the project root", Category: "project"},
		{Name: "site_dir", Type: "string", Default: config.DefaultSiteDir, Description: "Output directory, relative to the project root", Category: "project"},
		{Name: "show_query", Type: "bool", Default: strconv.FormatBool(config.DefaultShowQuery), Description: "Render a toggle revealing each block's SQL", Category: "project"},
		{Name: "minify_assets", Type: "bool", Default: strconv.FormatBool(config.DefaultMinifyAssets), Description: "Minify the toggle stylesheet and script", Category: "project"},
		{Name: "log_format", Type: "string", Default: config.DefaultLogFormat, Description: "Log format: text or json", Category: "project"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Command output: auto, text or json", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Log at debug level", Category: "project"},

		{Name: "type", Type: "string", Default: string(core.DefaultKind), Description: "Backend: sqlite, duckdb, mssql or postgres", Category: "source"},
		{Name: "path", Type: "string", Required: "sqlite, duckdb", Description: "Database file, relative to the project root", Category: "source"},
		{Name: "server", Type: "string", Required: "mssql, postgres", Description: "Server host name", Category: "source"},
		{Name: "database", Type: "string", Required: "mssql, postgres", Description: "Database name", Category: "source"},
		{Name: "port", Type: "int", Description: "Server port; the driver default when unset", Category: "source"},
		{Name: "username", Type: "string", Description: "Login name; may be ${VAR}", Category: "source"},
		{Name: "password", Type: "string", Description: "Password; may be ${VAR}, empty when the variable is unset", Category: "source"},
		{Name: "driver", Type: "string", Default: mssql.DefaultDriver, Description: "SQL Server driver name, reported in diagnostics", Category: "source"},
		{Name: "trusted_connection", Type: "any", Description: "Present with any value: use integrated authentication", Category: "source"},
		{Name: "encrypt", Type: "bool", Description: "Encrypt the connection", Category: "source"},
		{Name: "trust_server_certificate", Type: "bool", Description: "Skip server certificate validation", Category: "source"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "docsql configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("docsql reads `docsql.yaml` (or `docsql.yml`) from the project root. " +
		"The project root is the directory given with `--project-dir`, the directory of `--config`, " +
		"or the nearest directory above the working directory holding a config file.")

	fields := configSchema()

	w.Header(2, "Project Settings")
	var projectRows [][]string
	for _, f := range fields {
		if f.Category == "project" {
			projectRows = append(projectRows, []string{InlineCode(f.Name), f.Type, orDash(f.Default, true), f.Description})
		}
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, projectRows)

	w.Header(2, "Data Sources")
	w.Paragraph("Data sources are defined under the `databases` key. A block without a selector uses the source named `" +
		core.DefaultSourceName + "`; a block tagged `sql[name]` uses the source called name.")
	var sourceRows [][]string
	for _, f := range fields {
		if f.Category == "source" {
			sourceRows = append(sourceRows, []string{InlineCode(f.Name), f.Type, orDash(f.Required, false), orDash(f.Default, true), f.Description})
		}
	}
	w.Table([]string{"Field", "Type", "Required for", "Default", "Description"}, sourceRows)

	w.Header(3, "Example")
	w.CodeBlock("yaml", `docs_dir: docs
site_dir: site
show_query: true

databases:
  default:
    type: sqlite
    path: data/population.db

  analytics:
    type: duckdb
    path: data/analytics.duckdb

  warehouse:
    type: mssql
    server: sql.example.com
    database: dw
    username: reporting
    password: ${DW_PASSWORD}
    encrypt: yes

  metrics:
    type: postgres
    server: pg.example.com
    port: 5432
    database: metrics
    username: ${PG_USER}
    password: ${PG_PASSWORD}`)

	w.Header(2, "Page Front Matter")
	w.Paragraph("A page can override `show_query` and `databases` in its front matter. " +
		"Page sources replace global sources of the same name and add new ones; other global sources stay available.")
	w.CodeBlock("markdown", `---
show_query: false
databases:
  default:
    type: duckdb
    path: data/other.duckdb
---
# Report`)

	w.Header(2, "Legacy Option")
	w.Paragraph("A single `database: {type, path}` entry is still accepted. It becomes the `" +
		core.DefaultSourceName + "` source unless `databases` already defines one.")

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func orDash(s string, code bool) string {
	if s == "" {
		return "-"
	}
	if code {
		return InlineCode(s)
	}
	return s
}
